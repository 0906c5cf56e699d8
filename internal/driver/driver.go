// Package driver implements the iteration driver (C10): the state
// machine that ties ingestion, sampling, sentinel search, mirroring and
// evaluation together across the simulation's whole run, fanning the
// per-variant work out across a worker pool.
package driver

import (
	"errors"
	"time"

	"github.com/Emeline-1/pool"

	"github.com/Emeline-1/magnifier/internal/concurrent"
	"github.com/Emeline-1/magnifier/internal/config"
	"github.com/Emeline-1/magnifier/internal/evaluate"
	"github.com/Emeline-1/magnifier/internal/groundtruth"
	"github.com/Emeline-1/magnifier/internal/ingress"
	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/mirror"
	"github.com/Emeline-1/magnifier/internal/observation"
	"github.com/Emeline-1/magnifier/internal/output"
	"github.com/Emeline-1/magnifier/internal/sampler"
	"github.com/Emeline-1/magnifier/internal/sentinel"
	"github.com/Emeline-1/magnifier/internal/telemetry"
)

// ErrEndOfStream signals the observation store is exhausted; Run
// returns nil in that case, it is not a failure.
var ErrEndOfStream = errors.New("driver: end of packet stream")

type errDuplicateSentinel string

func (e errDuplicateSentinel) Error() string { return "duplicate sentinel prefix: " + string(e) }

// variantState is the per-variant data the driver carries across
// iterations: the mirror history ring and the last installed sentinel
// set (kept only to diff against, spec.md §3 "Lifetimes").
type variantState struct {
	mirrored history
	lastSet  map[ipaddr.Prefix]struct{}
}

// variantResult is what one variant's per-iteration work contributes
// to the output, collected through a concurrent.Map so worker
// completion order cannot leak into column order.
type variantResult struct {
	nSentinels, nAdded, nRemoved int
	mirrorScores                 evaluate.MirrorScores
}

// Driver owns all iteration state (spec.md §3 "Ownership").
type Driver struct {
	store   *observation.Store
	mapper  ingress.Mapper
	sampler *sampler.Sampler
	cfg     config.Config
	logger  *telemetry.Logger
	metrics *telemetry.Metrics
	out     *output.Writer

	samples  history
	variants []Variant
	states   map[string]*variantState

	iteration int
}

// New constructs a Driver ready to Run.
func New(store *observation.Store, mapper ingress.Mapper, smp *sampler.Sampler, cfg config.Config, logger *telemetry.Logger, metrics *telemetry.Metrics, out *output.Writer) *Driver {
	variants := Variants()
	states := make(map[string]*variantState, len(variants))
	for _, v := range variants {
		states[v.Key()] = &variantState{lastSet: make(map[ipaddr.Prefix]struct{})}
	}

	return &Driver{
		store:    store,
		mapper:   mapper,
		sampler:  smp,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		out:      out,
		variants: variants,
		states:   states,
	}
}

// Run drives the simulation to completion: iterate until the
// observation store reports an empty window, per spec.md §4.10's
// "ingest; if empty, terminate" phase, or until cfg.Iterations
// iterations have run, whichever comes first.
func (d *Driver) Run() error {
	for {
		if d.cfg.Iterations > 0 && d.iteration >= d.cfg.Iterations {
			return nil
		}
		err := d.step()
		if errors.Is(err, ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}
		d.iteration++
	}
}

// step runs one full iteration. Phases follow spec.md §4.10: shift,
// ingest, sample; at i=0 that is all (there is no history yet). From
// i=1 on, every variant rebuilds its mirror-informed sentinel set from
// samples_{n-1}+samples_{n-2}+mirrored_{n-1}+mirrored_{n-2} and installs
// fresh rules, priming the feedback loop even before scoring starts.
// Scores (sentinel-on-samples without mirroring, sampling-only, and
// each variant's mirroring-invalidation loss) are only recorded from
// i=3 on, once both samples and mirrored history have two full prior
// iterations behind them.
func (d *Driver) step() error {
	start := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.IterationWall.Observe(time.Since(start).Seconds())
		}
	}()

	d.samples.shift()
	for _, st := range d.states {
		st.mirrored.shift()
	}

	replayRealSpeed := d.cfg.PacketsPerSecond <= 0
	sliceDuration := d.cfg.PacketsPerSecond
	if replayRealSpeed {
		sliceDuration = d.cfg.DurationSeconds
	}
	window, err := d.store.Window(sliceDuration, replayRealSpeed, d.cfg.NBorder, d.mapper)
	if err != nil {
		return err
	}
	if len(window.Pkts) == 0 {
		return ErrEndOfStream
	}

	var sampled []observation.Record
	if d.cfg.Magnifier {
		sampled = d.sampler.SamplePerRouter(window.BorderPkts, window.BorderFlags, false)
	} else {
		sampled, _, _ = d.sampler.SampleEverflow(window.Pkts, window.Flags, window.BorderPkts, window.BorderFlags)
	}
	d.samples.cur = sampled

	if d.metrics != nil {
		d.metrics.PacketsIngested.Add(float64(len(window.Pkts)))
		d.metrics.PacketsSampled.Add(float64(len(sampled)))
	}

	if d.iteration == 0 {
		return nil
	}

	scoring := d.iteration >= 3

	var gt map[ipaddr.Prefix]*groundtruth.Entry
	var withoutMirrorRaw, withoutMirrorStrict evaluate.GroundTruthScores
	var samplingScores evaluate.SamplingScores
	if scoring {
		gt = groundtruth.Build(window.Pkts)

		// Family (2), sentinel-on-samples without mirroring: scored
		// once on the full, untruncated sentinel set from n, n-1, n-2
		// samples — top-k and ordering have no influence on it
		// (simulation.py's "full_" suffix results, computed outside
		// the per-(order,top_k) loop).
		fullSet := sentinel.Search(d.samples.combined(), d.cfg.SearchStart, d.cfg.SearchEnd)
		withoutMirrorRaw = evaluate.GroundTruth(gt, fullSet, false)
		withoutMirrorStrict = evaluate.GroundTruth(gt, fullSet, true)

		samplingScores = evaluate.Sampling(gt, sampled)
	}

	results := concurrent.NewMap[string, variantResult]()

	keys := make([]string, len(d.variants))
	byKey := make(map[string]Variant, len(d.variants))
	for i, v := range d.variants {
		keys[i] = v.Key()
		byKey[v.Key()] = v
	}

	pool.Launch_pool(len(keys), keys, func(key string) {
		v := byKey[key]
		st := d.states[key]

		// The mirror-informed history: two prior iterations of
		// samples plus this variant's own two prior iterations of
		// mirrored packets (spec.md §4.10 "sentinels" phase).
		pktHistory := append(d.samples.priorTwo(), st.mirrored.priorTwo()...)

		candidates := sentinel.Search(pktHistory, d.cfg.SearchStart, d.cfg.SearchEnd)
		enhanced := sentinel.Enhance(candidates, pktHistory)
		ranked := sentinel.Rank(enhanced, v.Order)
		top := sentinel.Top(ranked, v.TopK)

		engine := mirror.BuildRules(top)
		mirroredPkts, removed := engine.Apply(window.Pkts, true)
		if d.metrics != nil {
			d.metrics.PacketsMirrored.Add(float64(len(mirroredPkts)))
		}

		newSet := make(map[ipaddr.Prefix]struct{}, len(top))
		for _, s := range top {
			if _, dup := newSet[s.Prefix]; dup && d.logger != nil {
				d.logger.InvariantViolation("sentinel-uniqueness", errDuplicateSentinel(s.Prefix.String()))
			}
			newSet[s.Prefix] = struct{}{}
		}
		nNew, nAdded, nRemoved := groundtruth.CompareSets(newSet, st.lastSet)
		st.lastSet = newSet
		st.mirrored.cur = mirroredPkts

		var r variantResult
		r.nSentinels, r.nAdded, r.nRemoved = nNew, nAdded, nRemoved
		if scoring {
			r.mirrorScores = evaluate.Mirror(gt, removed)
		}
		results.Set(key, r)
	})

	if !scoring {
		return nil
	}

	d.emit(samplingScores, withoutMirrorRaw, withoutMirrorStrict, results)
	return nil
}

// emit writes this iteration's row for every tracked metric, column
// order fixed by d.variants regardless of which worker finished first.
func (d *Driver) emit(samplingScores evaluate.SamplingScores, withoutMirrorRaw, withoutMirrorStrict evaluate.GroundTruthScores, results *concurrent.Map[string, variantResult]) {
	if d.out == nil {
		return
	}

	d.out.PutInt("sampling_covered", samplingScores.Covered)
	d.out.PutInt("sampling_not_covered", samplingScores.NotCovered)
	d.out.PutUint64("sampling_pkt_covered", samplingScores.PktCovered)

	d.out.PutInt("sentinel_raw_correct", withoutMirrorRaw.CoveredCorrect)
	d.out.PutInt("sentinel_raw_wrong", withoutMirrorRaw.CoveredWrong)
	d.out.PutInt("sentinel_strict_correct", withoutMirrorStrict.CoveredCorrect)
	d.out.PutInt("sentinel_strict_wrong", withoutMirrorStrict.CoveredWrong)

	for _, v := range d.variants {
		r, ok := results.Get(v.Key())
		if !ok {
			continue
		}
		prefix := v.Key()
		d.out.PutInt(prefix+"_n_sentinels", r.nSentinels)
		d.out.PutInt(prefix+"_n_added", r.nAdded)
		d.out.PutInt(prefix+"_n_removed", r.nRemoved)
		d.out.PutInt(prefix+"_mirror_prefix_lost", r.mirrorScores.PrefixLost)
		d.out.PutUint64(prefix+"_mirror_pkt_lost", r.mirrorScores.PktLost)
	}
}
