package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LogEntry は単一のリクエストログを表します。
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// MonitoringService はAPIのモニタリング機能を提供します。
// リクエストログに加えて、監査解決の内訳（ローカル一致/AIフォールバック）を集計します。
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex

	// auditStats は監査解決カウンタの取得関数。未設定なら0を返す。
	auditStats func() (localHits, aiFallbacks uint64)
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]LogEntry, 0),
	}
}

// SetAuditStatsProvider は監査解決カウンタの供給元を登録します。
func (s *MonitoringService) SetAuditStatsProvider(fn func() (uint64, uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditStats = fn
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
// 管理・モニタリング系のパスはノイズになるため記録対象から除外します。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// DashboardData はダッシュボードに表示するための集計済みデータです。
type DashboardData struct {
	TotalRequests   int                      `json:"totalRequests"`
	Endpoints       map[string]int           `json:"endpoints"`
	StatusCodes     []map[string]interface{} `json:"statusCodes"`
	AvgResponseTime map[string]int64         `json:"avgResponseTimes"`
	RecentErrors    []LogEntry               `json:"recentErrors"`
	AuditLocalHits  uint64                   `json:"auditLocalHits"`
	AuditFallbacks  uint64                   `json:"auditAIFallbacks"`
}

// GetDashboardData は指定された期間のログを集計してダッシュボード用データを返します。
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	since := time.Now().Add(-time.Duration(periodHours) * time.Hour)

	filteredLogs := make([]LogEntry, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filteredLogs = append(filteredLogs, entry)
		}
	}

	// endpoints の集計
	endpoints := make(map[string]int)
	for _, entry := range filteredLogs {
		endpoints[entry.Path]++
	}

	// statusCodes の集計
	statusCodes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	for _, entry := range filteredLogs {
		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			statusCodes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			statusCodes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			statusCodes["5xx Server Error"]++
		}
	}
	statusCodesSlice := make([]map[string]interface{}, 0)
	for name, value := range statusCodes {
		statusCodesSlice = append(statusCodesSlice, map[string]interface{}{"name": name, "value": value})
	}

	// avgResponseTimes の集計
	responseTimeSum := make(map[string]time.Duration)
	responseCount := make(map[string]int)
	for _, entry := range filteredLogs {
		responseTimeSum[entry.Path] += entry.ResponseTime
		responseCount[entry.Path]++
	}
	avgResponseTimes := make(map[string]int64)
	for path, totalTime := range responseTimeSum {
		avgResponseTimes[path] = totalTime.Milliseconds() / int64(responseCount[path])
	}

	// recentErrors の集計（新しい順に最大10件）
	recentErrors := make([]LogEntry, 0)
	for i := len(filteredLogs) - 1; i >= 0; i-- {
		if filteredLogs[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filteredLogs[i])
			if len(recentErrors) >= 10 {
				break
			}
		}
	}

	var localHits, aiFallbacks uint64
	if s.auditStats != nil {
		localHits, aiFallbacks = s.auditStats()
	}

	return DashboardData{
		TotalRequests:   len(filteredLogs),
		Endpoints:       endpoints,
		StatusCodes:     statusCodesSlice,
		AvgResponseTime: avgResponseTimes,
		RecentErrors:    recentErrors,
		AuditLocalHits:  localHits,
		AuditFallbacks:  aiFallbacks,
	}
}
