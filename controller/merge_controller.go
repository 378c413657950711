package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"motion-dataset/models"
	"motion-dataset/services/storage"
	"motion-dataset/utils"
	"motion-dataset/views"
)

// ErrNoArtifacts is returned when a directory holds no per-label artifact
// to merge.
var ErrNoArtifacts = errors.New("controller: no per-label artifacts found")

// MergeController rebuilds the merged training and testing artifacts from
// per-label artifacts already on disk (<label>_train.csv, <label>_test.json,
// …). Tables must share one header and documents one layout.
type MergeController struct {
	dir  string
	sink storage.Sink
}

func NewMergeController(dir string, sink storage.Sink) *MergeController {
	return &MergeController{dir: dir, sink: sink}
}

// MergeResult lists what one kind of artifact merged into.
type MergeResult struct {
	Key     string
	Sources []string
	Windows int
}

// Run merges tables and documents found in the directory. Nothing is
// written unless every source of a kind reads and matches.
func (mc *MergeController) Run(ctx context.Context) ([]MergeResult, error) {
	var results []MergeResult

	tables, err := mc.mergeKind(ctx, ".csv", views.TrainingTable, views.TestingTable, mergeTables)
	if err != nil {
		return nil, err
	}
	results = append(results, tables...)

	docs, err := mc.mergeKind(ctx, ".json", views.TrainingDocs, views.TestingDocs, mergeDocuments)
	if err != nil {
		return nil, err
	}
	results = append(results, docs...)

	if len(results) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoArtifacts, mc.dir)
	}
	return results, nil
}

// mergeFunc merges the artifacts at paths and returns the rendered result,
// its window count and its schema.
type mergeFunc func(paths []string) ([]byte, int, string, error)

func (mc *MergeController) mergeKind(ctx context.Context, ext, trainKey, testKey string, merge mergeFunc) ([]MergeResult, error) {
	trainFiles, err := mc.find("_train" + ext)
	if err != nil {
		return nil, err
	}
	testFiles, err := mc.find("_test" + ext)
	if err != nil {
		return nil, err
	}
	if len(trainFiles) == 0 && len(testFiles) == 0 {
		return nil, nil
	}

	type pending struct {
		result MergeResult
		data   []byte
	}
	var (
		out    []pending
		schema string
	)
	for _, set := range []struct {
		key   string
		paths []string
	}{{trainKey, trainFiles}, {testKey, testFiles}} {
		data, n, s, err := merge(set.paths)
		if err != nil {
			return nil, fmt.Errorf("merge %s: %w", set.key, err)
		}
		// training and testing outputs must share one layout
		switch {
		case s == "":
		case schema == "":
			schema = s
		case s != schema:
			return nil, fmt.Errorf("merge %s: %w: layout differs from %s", set.key, views.ErrSchemaMismatch, trainKey)
		}
		out = append(out, pending{MergeResult{Key: set.key, Sources: set.paths, Windows: n}, data})
	}

	results := make([]MergeResult, 0, len(out))
	for _, p := range out {
		if err := mc.sink.Put(ctx, p.result.Key, p.data); err != nil {
			return nil, err
		}
		utils.L().Info("merged %d file(s) into %s  (%d windows)", len(p.result.Sources), p.result.Key, p.result.Windows)
		results = append(results, p.result)
	}
	return results, nil
}

// find lists the files ending in suffix, in name order.
func (mc *MergeController) find(suffix string) ([]string, error) {
	entries, err := os.ReadDir(mc.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", mc.dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		out = append(out, filepath.Join(mc.dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func readEach[T any](paths []string, read func(io.Reader) (views.Part[T], error)) ([]views.Part[T], error) {
	parts := make([]views.Part[T], 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		part, err := read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func mergeTables(paths []string) ([]byte, int, string, error) {
	parts, err := readEach(paths, views.ReadTablePart)
	if err != nil {
		return nil, 0, "", err
	}
	merged, err := views.Concat(parts...)
	if err != nil {
		return nil, 0, "", err
	}
	data, err := views.RenderTable(merged)
	return data, merged.Len(), merged.Schema, err
}

func mergeDocuments(paths []string) ([]byte, int, string, error) {
	parts, err := readEach[models.Document](paths, views.ReadDocumentPart)
	if err != nil {
		return nil, 0, "", err
	}
	merged, err := views.Concat(parts...)
	if err != nil {
		return nil, 0, "", err
	}
	data, err := views.RenderDocuments(merged)
	return data, merged.Len(), merged.Schema, err
}
