package models

// Recording is an ordered, single-label sequence of sensor rows loaded from
// one persisted table. It is built once and never modified afterwards.
type Recording struct {
	Source string // file or object the rows were read from
	Label  string // label of the first row, shared by every row
	Rows   []SensorRow
}

// Len returns the number of rows.
func (r *Recording) Len() int { return len(r.Rows) }
