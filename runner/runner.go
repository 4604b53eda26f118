package runner

import (
	"context"
	"errors"
	"math/big"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arcana-network/secretrecovery/cache"
	"github.com/arcana-network/secretrecovery/common"
	"github.com/arcana-network/secretrecovery/secret"
	"github.com/arcana-network/secretrecovery/telemetry"
	"github.com/arcana-network/secretrecovery/testcase"
)

const handlerName = "runner"

// Outcome of one test case. Err is set when the case could not be loaded,
// decoded or computed; the other fields are then empty.
type Result struct {
	Location       string
	Secret         *big.Int
	IncorrectRoots []*big.Int
	OffCurve       []*big.Int
	Recovery       *secret.Recovery
	Cached         bool
	Err            error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

type Options struct {
	// Run the leave-one-out check after recovering the secret.
	DetectIncorrect bool
	// Upper bound on C(n, k) per case. Zero means secret.DefaultMaxSubsets.
	MaxSubsets int
	// Maximum number of test cases loaded at the same time. Zero or less
	// means no limit.
	Concurrency int
}

func DefaultOptions() Options {
	return Options{
		DetectIncorrect: true,
		MaxSubsets:      secret.DefaultMaxSubsets,
	}
}

type Runner struct {
	loader    testcase.Loader
	sink      Sink
	options   Options
	recoverer *secret.Recoverer
	results   *cache.DocumentCache[Result]
}

func New(loader testcase.Loader, sink Sink, options Options) *Runner {
	return &Runner{
		loader:    loader,
		sink:      sink,
		options:   options,
		recoverer: secret.NewRecoverer(options.MaxSubsets),
		results:   cache.New[Result](0),
	}
}

type loaded struct {
	data []byte
	err  error
}

// Run loads every location, recovers each secret and reports one result per
// location to the sink, in the order of locations. A failing case never stops
// the others.
func (r *Runner) Run(ctx context.Context, locations []string) []Result {
	documents := make([]loaded, len(locations))

	var g errgroup.Group
	if r.options.Concurrency > 0 {
		g.SetLimit(r.options.Concurrency)
	}
	for i, location := range locations {
		g.Go(func() error {
			data, err := r.loader.Load(ctx, location)
			documents[i] = loaded{data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, len(locations))
	for i, location := range locations {
		results[i] = r.process(location, documents[i])
		r.sink.Report(results[i])
	}
	if err := r.sink.Flush(); err != nil {
		log.WithError(err).Error(handlerName + ": flush")
	}
	return results
}

func (r *Runner) process(location string, doc loaded) Result {
	if doc.err != nil {
		common.LogLoadError(handlerName, location, doc.err)
		telemetry.IncrementCasesFailed(telemetry.FailureLoad)
		return Result{Location: location, Err: doc.err}
	}

	if cached, found := r.results.Get(doc.data); found {
		telemetry.IncrementCacheHits()
		cached.Location = location
		cached.Cached = true
		return cached
	}

	result := r.compute(location, doc.data)
	if !result.Failed() {
		r.results.Set(doc.data, result)
	}
	return result
}

func (r *Runner) compute(location string, data []byte) Result {
	tc, err := testcase.Parse(location, data)
	if err != nil {
		common.LogDecodeError(handlerName, location, err)
		telemetry.IncrementCasesFailed(telemetry.FailureDecode)
		return Result{Location: location, Err: err}
	}

	recovery, err := r.recoverer.Recover(tc.Points, tc.K)
	if err != nil {
		common.LogComputationError(handlerName, location, err)
		telemetry.IncrementCasesFailed(telemetry.FailureCompute)
		return Result{Location: location, Err: err}
	}

	result := Result{
		Location: location,
		Secret:   recovery.Secret,
		Recovery: recovery,
		OffCurve: secret.OffCurve(tc.Points, recovery.Polynomial),
	}

	if r.options.DetectIncorrect {
		incorrect, err := secret.FindIncorrect(tc.Points, recovery.Secret)
		if err != nil {
			common.LogComputationError(handlerName, location, err)
			telemetry.IncrementCasesFailed(telemetry.FailureCompute)
			return Result{Location: location, Err: err}
		}
		result.IncorrectRoots = incorrect
		telemetry.AddIncorrectRoots(len(incorrect))
	}

	telemetry.IncrementCasesProcessed()
	return result
}

// Kind classifies a failed result as one of the telemetry failure kinds.
func Kind(err error) string {
	switch {
	case errors.Is(err, testcase.ErrResourceLoad):
		return telemetry.FailureLoad
	case testcase.IsDecodeError(err):
		return telemetry.FailureDecode
	default:
		return telemetry.FailureCompute
	}
}
