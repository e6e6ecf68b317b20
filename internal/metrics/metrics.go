package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StoreAccounts = "accounts"
	StoreSchedule = "schedule"
)

var (
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schedule_manager",
		Name:      "store_operations_total",
		Help:      "Store operations by store, operation and result.",
	}, []string{"store", "operation", "result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "schedule_manager",
		Name:      "active_sessions",
		Help:      "1 while an account session holds an open schedule store.",
	})

	sessionSwitches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "schedule_manager",
		Name:      "session_switches_total",
		Help:      "Successful logins, including account switches.",
	})
)

// ObserveStore 记录一次存储操作，err 为 nil 视为成功。
func ObserveStore(store, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeOperations.WithLabelValues(store, operation, result).Inc()
}

// SessionOpened 在打开新的排班库后调用。
func SessionOpened() {
	activeSessions.Set(1)
	sessionSwitches.Inc()
}

// SessionClosed 在关闭排班库后调用。
func SessionClosed() {
	activeSessions.Set(0)
}

// Handler 暴露 Prometheus 文本格式指标。
func Handler() http.Handler {
	return promhttp.Handler()
}
