package runner

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/ryanuber/columnize"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/secretrecovery/common"
)

const noneIndicator = "None"

// Receives one result per test case. Flush is called once all the cases of
// a run were reported.
type Sink interface {
	Report(result Result)
	Flush() error
}

func formatRoots(roots []*big.Int) string {
	if len(roots) == 0 {
		return noneIndicator
	}
	return "[" + common.JoinInts(roots, ", ") + "]"
}

// Logs each result through logrus.
type LogSink struct{}

func (LogSink) Report(result Result) {
	if result.Failed() {
		log.WithFields(log.Fields{
			"Location": result.Location,
			"Kind":     Kind(result.Err),
			"Error":    result.Err,
		}).Error("Test case failed")
		return
	}

	log.WithFields(log.Fields{
		"Location":       result.Location,
		"Secret":         result.Secret.String(),
		"IncorrectRoots": formatRoots(result.IncorrectRoots),
		"Votes":          result.Recovery.Votes,
		"Subsets":        result.Recovery.Subsets,
		"Cached":         result.Cached,
	}).Info("Secret recovered")
}

func (LogSink) Flush() error {
	return nil
}

// Collects the results and writes them as an aligned table on Flush.
type TableSink struct {
	mu     sync.Mutex
	out    io.Writer
	rows   []string
	header bool
}

func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

func (t *TableSink) Report(result Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.header {
		t.rows = append(t.rows, "Test case|Secret|Incorrect roots|Off curve|Votes")
		t.header = true
	}
	if result.Failed() {
		t.rows = append(t.rows, fmt.Sprintf("%s|%s error: %v|||", result.Location, Kind(result.Err), result.Err))
		return
	}
	t.rows = append(t.rows, fmt.Sprintf(
		"%s|%s|%s|%s|%d/%d",
		result.Location,
		result.Secret.String(),
		formatRoots(result.IncorrectRoots),
		formatRoots(result.OffCurve),
		result.Recovery.Votes,
		result.Recovery.Subsets,
	))
}

func (t *TableSink) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.rows) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(t.out, FormatTable(t.rows))
	t.rows = nil
	t.header = false
	return err
}

func FormatTable(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = ""
	columnConf.Glue = " | "

	return columnize.Format(in, columnConf)
}
