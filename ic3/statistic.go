package ic3

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Statistic accumulates the counters and timers the engine reports on
// SIGINT or on normal termination, mirroring original_source's
// statistic.rs.
type Statistic struct {
	NumMic       int
	NumMicSuccess int
	NumCtg       int
	NumGetBad    int
	NumBlock     int
	NumBlockSat  int
	NumBlockUnsat int
	NumFrames    int

	overallStart   time.Time
	blockTime      time.Duration
	micTime        time.Duration
	propagateTime  time.Duration
}

// NewStatistic starts the overall clock.
func NewStatistic() *Statistic {
	return &Statistic{overallStart: time.Now()}
}

// TimeBlock returns a func to call when a block() invocation finishes,
// accumulating the elapsed time.
func (s *Statistic) TimeBlock() func() {
	start := time.Now()
	return func() { s.blockTime += time.Since(start) }
}

// TimeMic is TimeBlock's counterpart for Mic calls.
func (s *Statistic) TimeMic() func() {
	start := time.Now()
	return func() { s.micTime += time.Since(start) }
}

// TimePropagate is TimeBlock's counterpart for propagate calls.
func (s *Statistic) TimePropagate() func() {
	start := time.Now()
	return func() { s.propagateTime += time.Since(start) }
}

// Log writes every counter to log as the fields of a single Info-level
// entry, in the shape a --verbose run or a SIGINT handler prints.
func (s *Statistic) Log(log *logrus.Logger, pushCounts []int) {
	log.WithFields(logrus.Fields{
		"frames":          s.NumFrames,
		"get_bad":         s.NumGetBad,
		"block":           s.NumBlock,
		"block_sat":       s.NumBlockSat,
		"block_unsat":     s.NumBlockUnsat,
		"mic":             s.NumMic,
		"mic_success":     s.NumMicSuccess,
		"ctg":             s.NumCtg,
		"elapsed":         time.Since(s.overallStart),
		"block_time":      s.blockTime,
		"mic_time":        s.micTime,
		"propagate_time":  s.propagateTime,
		"obligation_push": pushCounts,
	}).Info("ic3 statistics")
}
