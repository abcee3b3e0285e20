package gemini

import (
	"encoding/json"
	"log"
	"strings"

	"salesmate-api/pkg/models"
)

const (
	flyerStartTag = "[FLYER_JSON]"
	flyerEndTag   = "[/FLYER_JSON]"
)

// extractFlyer はモデルの応答テキストからフライヤーJSONブロックを抽出します。
// 開始センチネルより前が表示テキスト、センチネルに挟まれた部分がJSON候補です。
// 終了センチネルが無い場合は残り全部を候補として扱います。
// JSONが壊れている場合はログを残してフライヤーなしで表示テキストのみ返します
// （壊れたブロックが呼び出し側に渡ることはありません）。
//
// センチネル形式はこの境界の内側だけに閉じ、外へはAssistantReplyの
// 構造化された形でのみ渡します。
func extractFlyer(responseText string) models.AssistantReply {
	idx := strings.Index(responseText, flyerStartTag)
	if idx < 0 {
		return models.AssistantReply{Text: responseText}
	}

	displayText := responseText[:idx]
	candidate := responseText[idx+len(flyerStartTag):]
	// 終了タグで分割して先頭セグメントを取る。タグ欠落時は残り全部が候補になる。
	candidate = strings.SplitN(candidate, flyerEndTag, 2)[0]

	var data models.FlyerData
	if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &data); err != nil {
		log.Printf("フライヤーJSONの解析に失敗: %v", err)
		return models.AssistantReply{Text: displayText}
	}

	return models.AssistantReply{Text: displayText, Flyer: &data}
}
