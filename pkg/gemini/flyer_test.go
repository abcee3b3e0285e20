package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFlyerNoSentinel(t *testing.T) {
	reply := extractFlyer("Just a regular answer about margins.")
	assert.Equal(t, "Just a regular answer about margins.", reply.Text)
	assert.Nil(t, reply.Flyer)
}

func TestExtractFlyerValidBlock(t *testing.T) {
	raw := `Here is your flyer draft.
[FLYER_JSON]
{
  "title": "Game Day Wings",
  "subtitle": "Limited Time",
  "items": [
    {"name": "Buffalo Wings", "description": "Crispy and saucy", "price": "$12.99", "margin": "72%"}
  ],
  "recipe": {
    "name": "House Buffalo Sauce",
    "ingredients": ["butter", "hot sauce"],
    "method": "Melt and whisk.",
    "marginNote": "Under $0.40 per plate"
  },
  "callToAction": "Order by Thursday"
}
[/FLYER_JSON]`

	reply := extractFlyer(raw)
	assert.Equal(t, "Here is your flyer draft.\n", reply.Text)
	require.NotNil(t, reply.Flyer)
	assert.Equal(t, "Game Day Wings", reply.Flyer.Title)
	require.Len(t, reply.Flyer.Items, 1)
	assert.Equal(t, "Buffalo Wings", reply.Flyer.Items[0].Name)
	require.NotNil(t, reply.Flyer.Recipe)
	assert.Equal(t, "Under $0.40 per plate", reply.Flyer.Recipe.MarginNote)
	assert.Equal(t, "Order by Thursday", reply.Flyer.CallToAction)
}

func TestExtractFlyerMissingEndTag(t *testing.T) {
	// 終了タグが無い場合は残り全部がJSON候補になる
	raw := `Draft below.
[FLYER_JSON]
{"title": "Weekend Special", "items": [], "callToAction": "Call now"}`

	reply := extractFlyer(raw)
	assert.Equal(t, "Draft below.\n", reply.Text)
	require.NotNil(t, reply.Flyer)
	assert.Equal(t, "Weekend Special", reply.Flyer.Title)
}

func TestExtractFlyerMalformedJSON(t *testing.T) {
	raw := "Intro text. [FLYER_JSON]{not valid json[/FLYER_JSON]"

	// 壊れたブロックは呼び出し側に渡さず、フライヤーなしの表示テキストだけ返す
	reply := extractFlyer(raw)
	assert.Equal(t, "Intro text. ", reply.Text)
	assert.Nil(t, reply.Flyer)
}
