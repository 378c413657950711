package views

import (
	"fmt"
	"strings"

	"motion-dataset/dataset"
	"motion-dataset/models"
	"motion-dataset/utils"
)

// Format selects how windows are written out.
type Format string

const (
	FormatMergedTable Format = "merged-table"
	FormatWindowFiles Format = "per-window-file"
	FormatDocuments   Format = "structured-document"
)

// Formats lists every supported format.
var Formats = []Format{FormatMergedTable, FormatWindowFiles, FormatDocuments}

// ParseFormat accepts a format name or one of the short aliases used by the
// original upload tooling (merged, individual, json).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FormatMergedTable), "merged", "table", "csv":
		return FormatMergedTable, nil
	case string(FormatWindowFiles), "individual", "files":
		return FormatWindowFiles, nil
	case string(FormatDocuments), "json", "documents":
		return FormatDocuments, nil
	}
	return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownFormat, s, Formats)
}

// Artifact names of the merged outputs.
const (
	TrainingTable    = "training_data.csv"
	TestingTable     = "testing_data.csv"
	TrainingDocs     = "training_data.json"
	TestingDocs      = "testing_data.json"
	TrainingManifest = "training_manifest.csv"
	TestingManifest  = "testing_manifest.csv"
)

// Artifact is one encoded output unit ready to be stored.
type Artifact struct {
	Key     string // slash-separated path relative to the output root
	Data    []byte
	Windows int // windows encoded in the artifact
}

// Options configure every encoder of a strategy.
type Options struct {
	WindowSize int
	IntervalMs int
	Device     DeviceInfo
	Clock      utils.Clock
}

// Strategy encodes recordings one at a time and, once all are added,
// produces the per-label artifacts followed by the merged train/test
// artifacts.
type Strategy interface {
	Format() Format
	Add(label string, split dataset.Split) error
	Artifacts() ([]Artifact, error)
}

// NewStrategy returns the strategy for format.
func NewStrategy(format Format, opts Options) (Strategy, error) {
	switch format {
	case FormatMergedTable:
		return &strategy[[]string]{
			format:    format,
			enc:       TableEncoder{WindowSize: opts.WindowSize},
			perLabel:  tablesPerLabel,
			merged:    mergedTables,
			nextTrain: map[string]int{},
			nextTest:  map[string]int{},
		}, nil
	case FormatWindowFiles:
		return &strategy[WindowFile]{
			format:      format,
			enc:         WindowFileEncoder{WindowSize: opts.WindowSize, IntervalMs: opts.IntervalMs},
			perLabel:    windowFilesPerLabel,
			merged:      manifests,
			sharedIndex: true,
			nextTrain:   map[string]int{},
		}, nil
	case FormatDocuments:
		return &strategy[models.Document]{
			format: format,
			enc: DocumentEncoder{
				WindowSize: opts.WindowSize,
				IntervalMs: opts.IntervalMs,
				Device:     opts.Device,
				Clock:      opts.Clock,
			},
			perLabel:  documentsPerLabel,
			merged:    mergedDocuments,
			nextTrain: map[string]int{},
			nextTest:  map[string]int{},
		}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

type encoder[T any] interface {
	Schema() string
	Encode(label string, windows []models.Window) (Part[T], error)
}

type labelledParts[T any] struct {
	label       string
	train, test Part[T]
}

type strategy[T any] struct {
	format   Format
	enc      encoder[T]
	perLabel func(label string, train, test Part[T]) ([]Artifact, error)
	merged   func(train, test Part[T]) ([]Artifact, error)

	// sharedIndex numbers train and test windows from one counter per label
	// so file names never collide; otherwise each split counts from 0.
	sharedIndex bool
	nextTrain   map[string]int
	nextTest    map[string]int
	parts       []labelledParts[T]
}

func (s *strategy[T]) Format() Format { return s.format }

// Add encodes one recording's split. Window indexes continue across
// recordings that share a label.
func (s *strategy[T]) Add(label string, split dataset.Split) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	var train, test []models.Window
	if s.sharedIndex {
		base := s.nextTrain[label]
		train = renumber(split.Train, base)
		test = renumber(split.Test, base+len(train))
		s.nextTrain[label] = base + split.Len()
	} else {
		train = renumber(split.Train, s.nextTrain[label])
		test = renumber(split.Test, s.nextTest[label])
		s.nextTrain[label] += len(train)
		s.nextTest[label] += len(test)
	}

	trainPart, err := s.enc.Encode(label, train)
	if err != nil {
		return fmt.Errorf("encode %s train: %w", label, err)
	}
	testPart, err := s.enc.Encode(label, test)
	if err != nil {
		return fmt.Errorf("encode %s test: %w", label, err)
	}
	s.parts = append(s.parts, labelledParts[T]{label: label, train: trainPart, test: testPart})
	return nil
}

func (s *strategy[T]) Artifacts() ([]Artifact, error) {
	var (
		out    []Artifact
		labels []string
		byName = map[string][]labelledParts[T]{}
	)
	for _, p := range s.parts {
		if _, seen := byName[p.label]; !seen {
			labels = append(labels, p.label)
		}
		byName[p.label] = append(byName[p.label], p)
	}

	for _, label := range labels {
		train, test, err := s.concat(byName[label])
		if err != nil {
			return nil, fmt.Errorf("merge label %s: %w", label, err)
		}
		arts, err := s.perLabel(label, train, test)
		if err != nil {
			return nil, err
		}
		out = append(out, arts...)
	}

	train, test, err := s.concat(s.parts)
	if err != nil {
		return nil, fmt.Errorf("merge recordings: %w", err)
	}
	arts, err := s.merged(train, test)
	if err != nil {
		return nil, err
	}
	return append(out, arts...), nil
}

func (s *strategy[T]) concat(parts []labelledParts[T]) (Part[T], Part[T], error) {
	trains := make([]Part[T], len(parts))
	tests := make([]Part[T], len(parts))
	for i, p := range parts {
		trains[i], tests[i] = p.train, p.test
	}
	train, err := Concat(trains...)
	if err != nil {
		return train, Part[T]{}, fmt.Errorf("train: %w", err)
	}
	test, err := Concat(tests...)
	if err != nil {
		return train, test, fmt.Errorf("test: %w", err)
	}
	// keep the layout of empty outputs, e.g. the header of an empty table
	if train.Schema == "" {
		train.Schema = s.enc.Schema()
	}
	if test.Schema == "" {
		test.Schema = s.enc.Schema()
	}
	return train, test, nil
}

func renumber(windows []models.Window, base int) []models.Window {
	out := make([]models.Window, len(windows))
	for i, w := range windows {
		out[i] = w.WithIndex(base + i)
	}
	return out
}

// checkLabel rejects labels that would escape their output directory.
func checkLabel(label string) error {
	if label == "" || label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("views: label %q cannot name an artifact", label)
	}
	return nil
}

// ─── layouts ────────────────────────────────────────────────────────────

func tablesPerLabel(label string, train, test Part[[]string]) ([]Artifact, error) {
	return tableArtifacts(label+"_train.csv", train, label+"_test.csv", test)
}

func mergedTables(train, test Part[[]string]) ([]Artifact, error) {
	return tableArtifacts(TrainingTable, train, TestingTable, test)
}

func tableArtifacts(trainKey string, train Part[[]string], testKey string, test Part[[]string]) ([]Artifact, error) {
	trainData, err := RenderTable(train)
	if err != nil {
		return nil, err
	}
	testData, err := RenderTable(test)
	if err != nil {
		return nil, err
	}
	return []Artifact{
		{Key: trainKey, Data: trainData, Windows: train.Len()},
		{Key: testKey, Data: testData, Windows: test.Len()},
	}, nil
}

func windowFilesPerLabel(_ string, train, test Part[WindowFile]) ([]Artifact, error) {
	out := make([]Artifact, 0, train.Len()+test.Len())
	for _, f := range append(append([]WindowFile{}, train.Items...), test.Items...) {
		data, err := RenderWindowFile(f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f.Key(), err)
		}
		out = append(out, Artifact{Key: f.Key(), Data: data, Windows: 1})
	}
	return out, nil
}

func manifests(train, test Part[WindowFile]) ([]Artifact, error) {
	render := func(key string, p Part[WindowFile]) (Artifact, error) {
		rows := make([][]string, len(p.Items))
		for i, f := range p.Items {
			rows[i] = []string{f.Key(), f.Label}
		}
		data, err := renderCSV(ManifestColumns(), rows)
		return Artifact{Key: key, Data: data, Windows: p.Len()}, err
	}
	tr, err := render(TrainingManifest, train)
	if err != nil {
		return nil, err
	}
	te, err := render(TestingManifest, test)
	if err != nil {
		return nil, err
	}
	return []Artifact{tr, te}, nil
}

func documentsPerLabel(label string, train, test Part[models.Document]) ([]Artifact, error) {
	return documentArtifacts(label+"_train.json", train, label+"_test.json", test)
}

func mergedDocuments(train, test Part[models.Document]) ([]Artifact, error) {
	return documentArtifacts(TrainingDocs, train, TestingDocs, test)
}

func documentArtifacts(trainKey string, train Part[models.Document], testKey string, test Part[models.Document]) ([]Artifact, error) {
	trainData, err := RenderDocuments(train)
	if err != nil {
		return nil, err
	}
	testData, err := RenderDocuments(test)
	if err != nil {
		return nil, err
	}
	return []Artifact{
		{Key: trainKey, Data: trainData, Windows: train.Len()},
		{Key: testKey, Data: testData, Windows: test.Len()},
	}, nil
}
