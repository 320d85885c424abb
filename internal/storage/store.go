package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/rodviz/internal/rod"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var stepsHeader = []string{"step", "i", "j", "line", "candidate", "best", "r", "s", "description"}

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for save and load events.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RodLength int       `json:"rod_length"`
	Prices    []float64 `json:"prices"`
	Steps     int       `json:"steps"`
	Revenue   float64   `json:"revenue"`
	Pieces    []int     `json:"pieces"`
}

// Save writes a trace under a new run directory and returns its id.
func (s *Store) Save(prices []float64, trace []rod.Step) (string, error) {
	if len(trace) == 0 {
		return "", errors.New("storage: empty trace")
	}

	res := rod.Final(trace)
	now := time.Now()
	runID := fmt.Sprintf("rod%d_%d", res.Length, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		RodLength: res.Length,
		Prices:    prices,
		Steps:     len(trace),
		Revenue:   res.Revenue,
		Pieces:    res.Pieces,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStepsCSV(csvFile, trace); err != nil {
		return "", err
	}

	s.logger.Info("trace saved", "run", runID, "steps", len(trace), "revenue", res.Revenue)
	return runID, nil
}

// WriteStepsCSV writes one row per step. Snapshot arrays are space-joined.
func WriteStepsCSV(out io.Writer, trace []rod.Step) error {
	w := csv.NewWriter(out)
	if err := w.Write(stepsHeader); err != nil {
		return err
	}

	for _, st := range trace {
		row := []string{
			strconv.Itoa(st.Number),
			strconv.Itoa(st.I),
			strconv.Itoa(st.J),
			st.Line.String(),
			formatFloat(st.Candidate),
			formatFloat(st.Best),
			rod.FormatPrices(st.R),
			joinInts(st.S),
			st.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run directory", "dir", entry.Name(), "error", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSteps rebuilds a saved trace. Rod views are derived again from the
// stored cut arrays, which must decompose cleanly.
func (s *Store) LoadSteps(runID string) ([]rod.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadStepsCSV(file)
}

func ReadStepsCSV(in io.Reader) ([]rod.Step, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []rod.Step{}, nil
	}

	trace := make([]rod.Step, 0, len(records)-1)
	for n, record := range records[1:] {
		st, err := parseStep(record)
		if err != nil {
			return nil, fmt.Errorf("steps row %d: %w", n+1, err)
		}
		if st.Number != n {
			return nil, fmt.Errorf("steps row %d: step number %d out of sequence", n+1, st.Number)
		}
		width := len(st.R)
		if n > 0 {
			width = len(trace[0].R)
		}
		if err := checkSnapshot(st, width); err != nil {
			return nil, fmt.Errorf("steps row %d: %w", n+1, err)
		}
		if err := rod.CheckCuts(st.S); err != nil {
			return nil, fmt.Errorf("steps row %d: %w", n+1, err)
		}
		st.Rod = rod.View(st.I, st.J, st.S)
		trace = append(trace, st)
	}

	return trace, nil
}

func parseStep(record []string) (rod.Step, error) {
	var st rod.Step
	var err error

	ints := []*int{&st.Number, &st.I, &st.J}
	for k, p := range ints {
		if *p, err = strconv.Atoi(record[k]); err != nil {
			return st, err
		}
	}
	if st.Line, err = rod.ParseLine(record[3]); err != nil {
		return st, err
	}
	if st.Candidate, err = strconv.ParseFloat(record[4], 64); err != nil {
		return st, err
	}
	if st.Best, err = strconv.ParseFloat(record[5], 64); err != nil {
		return st, err
	}
	if st.R, err = parseFloats(record[6]); err != nil {
		return st, err
	}
	if st.S, err = parseInts(record[7]); err != nil {
		return st, err
	}
	if len(st.R) != len(st.S) {
		return st, fmt.Errorf("r has %d entries, s has %d", len(st.R), len(st.S))
	}
	st.Description = record[8]
	return st, nil
}

// checkSnapshot rejects rows whose arrays could not have come from a trace
// of a rod of length width-1.
func checkSnapshot(st rod.Step, width int) error {
	switch {
	case len(st.R) == 0:
		return errors.New("empty r and s snapshot")
	case len(st.R) != width:
		return fmt.Errorf("snapshot has %d entries, want %d", len(st.R), width)
	case st.R[0] != 0 || st.S[0] != 0:
		return errors.New("r[0] and s[0] must be 0")
	case st.I < 0 || st.I >= len(st.R):
		return fmt.Errorf("i=%d outside rod of length %d", st.I, len(st.R)-1)
	case st.J < 0 || st.J > st.I:
		return fmt.Errorf("j=%d outside 0..%d", st.J, st.I)
	}
	return nil
}

func parseFloats(field string) ([]float64, error) {
	parts := strings.Fields(field)
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(field string) ([]int, error) {
	parts := strings.Fields(field)
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
