// Package metrics содержит prometheus-метрики сервиса
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbErrorsTotal       *prometheus.CounterVec

	appointmentsCreated  *prometheus.CounterVec
	bookingConflicts     *prometheus.CounterVec
	appointmentsCanceled prometheus.Counter
	settlementsCompleted prometheus.Counter
	settlementsRejected  prometheus.Counter
	settlementAmount     prometheus.Counter
}

// New создает и регистрирует метрики в reg
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность обработки HTTP запросов",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Длительность SQL запросов",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Количество ошибок SQL запросов",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Количество созданных записей по боксам",
			ConstLabels: constLabels,
		}, []string{"box"}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Количество отказов из-за занятой ячейки",
			ConstLabels: constLabels,
		}, []string{"box"}),
		appointmentsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Количество отмененных записей",
			ConstLabels: constLabels,
		}),
		settlementsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "settlements_completed_total",
			Help:        "Количество закрытых расчетов",
			ConstLabels: constLabels,
		}),
		settlementsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "settlements_unbalanced_total",
			Help:        "Количество отклоненных несбалансированных расчетов",
			ConstLabels: constLabels,
		}),
		settlementAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "settlement_amount_minor_units_total",
			Help:        "Сумма закрытых продаж в минимальных единицах валюты",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbErrorsTotal,
		m.appointmentsCreated,
		m.bookingConflicts,
		m.appointmentsCanceled,
		m.settlementsCompleted,
		m.settlementsRejected,
		m.settlementAmount,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует SQL запрос
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// AppointmentCreated увеличивает счетчик созданных записей
func (m *Metrics) AppointmentCreated(box string) {
	if m == nil {
		return
	}
	m.appointmentsCreated.WithLabelValues(box).Inc()
}

// BookingConflict увеличивает счетчик конфликтов ячейки
func (m *Metrics) BookingConflict(box string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(box).Inc()
}

// AppointmentCancelled увеличивает счетчик отмен
func (m *Metrics) AppointmentCancelled() {
	if m == nil {
		return
	}
	m.appointmentsCanceled.Inc()
}

// SettlementCompleted фиксирует закрытый расчет и его сумму
func (m *Metrics) SettlementCompleted(totalMinorUnits int64) {
	if m == nil {
		return
	}
	m.settlementsCompleted.Inc()
	if totalMinorUnits > 0 {
		m.settlementAmount.Add(float64(totalMinorUnits))
	}
}

// SettlementUnbalanced увеличивает счетчик несбалансированных расчетов
func (m *Metrics) SettlementUnbalanced() {
	if m == nil {
		return
	}
	m.settlementsRejected.Inc()
}
