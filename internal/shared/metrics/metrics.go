package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumeDeliveredTotal    atomic.Uint64
	resumeDeniedTotal       atomic.Uint64
	submissionAcceptedTotal atomic.Uint64
	submissionRejectedTotal atomic.Uint64

	deliveryBytes = newHistogram([]float64{16 << 10, 64 << 10, 256 << 10, 1 << 20, 4 << 20, 10 << 20})
)

// IncResumeDelivered increments the delivered counter.
func IncResumeDelivered() {
	resumeDeliveredTotal.Add(1)
}

// IncResumeDenied increments the denied counter.
func IncResumeDenied() {
	resumeDeniedTotal.Add(1)
}

// IncSubmissionAccepted increments the accepted submissions counter.
func IncSubmissionAccepted() {
	submissionAcceptedTotal.Add(1)
}

// IncSubmissionRejected increments the rejected submissions counter.
func IncSubmissionRejected() {
	submissionRejectedTotal.Add(1)
}

// ObserveDeliveryBytes records the size of a delivered resume.
func ObserveDeliveryBytes(value float64) {
	if value < 0 {
		value = 0
	}
	deliveryBytes.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_delivered_total", "Total resume files delivered", resumeDeliveredTotal.Load())
	writeCounter(&buf, "resume_denied_total", "Total resume deliveries denied", resumeDeniedTotal.Load())
	writeCounter(&buf, "submission_accepted_total", "Total guest submissions accepted", submissionAcceptedTotal.Load())
	writeCounter(&buf, "submission_rejected_total", "Total guest submissions rejected", submissionRejectedTotal.Load())
	writeHistogram(&buf, "resume_delivery_bytes", "Delivered resume size in bytes", deliveryBytes.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
