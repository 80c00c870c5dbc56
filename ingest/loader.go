package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// LOADER - Directory scan, normalize, adjust
// =============================================================================

// Loader turns a directory of YYYY-MM.csv roster files into one
// normalized, adjusted record stream.
type Loader struct {
	normalizer *roster.Normalizer
	adjuster   *roster.Adjuster
	log        zerolog.Logger
}

func NewLoader(table *roster.Table, log zerolog.Logger) *Loader {
	return &Loader{
		normalizer: roster.NewNormalizer(table),
		adjuster:   roster.NewAdjuster(),
		log:        log.With().Str("component", "loader").Logger(),
	}
}

// Batch is the result of one directory load: the adjusted records plus
// everything worth auditing about the run.
type Batch struct {
	ID             string
	SourceDir      string
	Periods        []roster.YearMonth
	MissingMonths  []roster.YearMonth
	FilesProcessed int
	Records        []roster.DayRecord
	Stats          roster.Stats
	CreatedAt      time.Time
}

// LoadDir reads every YYYY-MM.csv in dir in chronological order,
// normalizes each month, then applies the cross-day adjustments over
// the concatenated stream so handoff pairs resolve against their real
// predecessor regardless of which file the days came from.
func (l *Loader) LoadDir(dir string) (Batch, error) {
	batch := Batch{
		ID:        uuid.New().String(),
		SourceDir: dir,
		CreatedAt: time.Now().UTC(),
	}

	paths, err := l.discover(dir)
	if err != nil {
		return Batch{}, err
	}
	if len(paths) == 0 {
		return Batch{}, fmt.Errorf("no YYYY-MM.csv roster files in %s", dir)
	}

	var normalized []roster.DayRecord
	for _, path := range paths {
		mf, err := ParseFile(path)
		if err != nil {
			return Batch{}, err
		}

		if !l.normalizer.HeaderMatchesMonth(mf.Header, mf.Period) {
			l.log.Warn().
				Str("period", mf.Period.String()).
				Int("header_days", mf.Header.DayCount()).
				Int("month_days", roster.DaysInMonth(mf.Period.Year, mf.Period.Month)).
				Msg("header day count does not match month length")
		}

		records, stats := l.normalizer.NormalizeTable(mf.Rows, mf.Header, mf.Period)
		normalized = append(normalized, records...)
		batch.Stats.Add(stats)
		batch.Periods = append(batch.Periods, mf.Period)
		batch.FilesProcessed++

		l.log.Info().
			Str("period", mf.Period.String()).
			Int("records", stats.Records).
			Int("skipped_rows", stats.SkippedRows).
			Int("unknown_codes", stats.UnknownCodes).
			Msg("roster file loaded")
	}

	batch.MissingMonths = missingMonths(batch.Periods)
	for _, ym := range batch.MissingMonths {
		l.log.Warn().Str("period", ym.String()).Msg("gap in roster coverage")
	}

	adjusted, err := l.adjuster.AdjustAll(normalized)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to adjust records: %w", err)
	}
	batch.Records = adjusted

	l.log.Info().
		Str("batch_id", batch.ID).
		Int("files", batch.FilesProcessed).
		Int("records", len(batch.Records)).
		Msg("load complete")
	return batch, nil
}

// discover lists the period-named csv files of dir in chronological
// order. Files whose names do not parse as YYYY-MM are ignored.
func (l *Loader) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster directory: %w", err)
	}

	type dated struct {
		path   string
		period roster.YearMonth
	}
	var files []dated
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		period, err := PeriodFromFilename(e.Name())
		if err != nil {
			l.log.Debug().Str("file", e.Name()).Msg("skipping non-period csv")
			continue
		}
		files = append(files, dated{path: filepath.Join(dir, e.Name()), period: period})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].period.Before(files[j].period) })

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

// missingMonths reports the month gaps between the first and last
// loaded period. Gaps are legal but the balance carried across one is
// only as meaningful as the data that exists.
func missingMonths(periods []roster.YearMonth) []roster.YearMonth {
	if len(periods) < 2 {
		return nil
	}
	var missing []roster.YearMonth
	for i := 1; i < len(periods); i++ {
		cur := nextMonth(periods[i-1])
		for cur.Before(periods[i]) {
			missing = append(missing, cur)
			cur = nextMonth(cur)
		}
	}
	return missing
}

func nextMonth(ym roster.YearMonth) roster.YearMonth {
	if ym.Month == time.December {
		return roster.YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return roster.YearMonth{Year: ym.Year, Month: ym.Month + 1}
}
