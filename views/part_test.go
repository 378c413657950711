package views_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion-dataset/models"
	"motion-dataset/utils"
	"motion-dataset/views"
)

func TestConcat_PreservesOrder(t *testing.T) {
	a := views.Part[[]string]{Schema: "x", Items: [][]string{{"1"}, {"2"}}}
	b := views.Part[[]string]{Schema: "x", Items: [][]string{{"3"}}}

	got, err := views.Concat(a, views.Part[[]string]{}, b)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Schema)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}}, got.Items)
}

func TestConcat_DuplicatesKept(t *testing.T) {
	a := views.Part[int]{Schema: "n", Items: []int{1, 1}}
	got, err := views.Concat(a, a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, got.Items)
}

func TestConcat_SchemaMismatch(t *testing.T) {
	a, err := views.TableEncoder{WindowSize: 4}.Encode("normal", windows(t, 8, 4, 4, "normal"))
	require.NoError(t, err)
	b, err := views.TableEncoder{WindowSize: 2}.Encode("normal", windows(t, 8, 2, 2, "normal"))
	require.NoError(t, err)

	_, err = views.Concat(a, b)
	require.ErrorIs(t, err, views.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "accel_x_0")
}

func TestConcat_Empty(t *testing.T) {
	got, err := views.Concat[models.Document]()
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestRenderTable_ReadBack(t *testing.T) {
	part, err := views.TableEncoder{WindowSize: 4}.Encode("normal", windows(t, 8, 4, 2, "normal"))
	require.NoError(t, err)

	data, err := views.RenderTable(part)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "timestamp,accel_x_0,"))

	back, err := views.ReadTablePart(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, part, back)
}

func TestRenderDocuments(t *testing.T) {
	data, err := views.RenderDocuments(views.Part[models.Document]{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	enc := views.DocumentEncoder{WindowSize: 4, IntervalMs: 20, Clock: utils.FixedClock(time.Unix(10, 0))}
	part, err := enc.Encode("normal", windows(t, 8, 4, 4, "normal"))
	require.NoError(t, err)
	data, err = views.RenderDocuments(part)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Contains(t, raw[0], "protected")
	assert.Contains(t, raw[0], "signature")
	payload := raw[0]["payload"].(map[string]any)
	assert.Equal(t, "normal", payload["label"])
	assert.EqualValues(t, 20, payload["interval_ms"])

	back, err := views.ReadDocumentPart(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, part, back)
}

func TestReadDocumentPart_Mismatch(t *testing.T) {
	enc := views.DocumentEncoder{WindowSize: 4, IntervalMs: 20, Clock: utils.FixedClock(time.Unix(10, 0))}
	a, err := enc.Encode("normal", windows(t, 4, 4, 4, "normal"))
	require.NoError(t, err)
	enc.IntervalMs = 10
	b, err := enc.Encode("normal", windows(t, 4, 4, 4, "normal"))
	require.NoError(t, err)

	data, err := json.Marshal(append(a.Items, b.Items...))
	require.NoError(t, err)
	_, err = views.ReadDocumentPart(bytes.NewReader(data))
	assert.ErrorIs(t, err, views.ErrSchemaMismatch)
}
