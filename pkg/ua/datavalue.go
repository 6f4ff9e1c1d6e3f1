package ua

// DataValue pairs a Variant with a status and source/server timestamps.
// The picosecond fields refine the timestamps below the 100ns DateTime
// resolution.
type DataValue struct {
	Value             Variant
	Status            StatusCode
	SourceTimestamp   DateTime
	SourcePicoseconds uint16
	ServerTimestamp   DateTime
	ServerPicoseconds uint16
}

func (d *DataValue) Clear() {
	d.Value.Clear()
	*d = DataValue{}
}

// CopyFrom deep-copies src into d. On failure d is left cleared.
func (d *DataValue) CopyFrom(src *DataValue) error {
	d.Clear()
	if err := d.Value.CopyFrom(&src.Value); err != nil {
		d.Clear()
		return err
	}
	d.Status = src.Status
	d.SourceTimestamp = src.SourceTimestamp
	d.SourcePicoseconds = src.SourcePicoseconds
	d.ServerTimestamp = src.ServerTimestamp
	d.ServerPicoseconds = src.ServerPicoseconds
	return nil
}

// Compare orders by status, then server timestamp and picoseconds, then
// source timestamp and picoseconds, then by value.
func (d *DataValue) Compare(o *DataValue) (int, error) {
	if d.Status != o.Status {
		if d.Status < o.Status {
			return -1, nil
		}
		return 1, nil
	}
	if c := d.ServerTimestamp.Compare(o.ServerTimestamp); c != 0 {
		return c, nil
	}
	if d.ServerPicoseconds != o.ServerPicoseconds {
		if d.ServerPicoseconds < o.ServerPicoseconds {
			return -1, nil
		}
		return 1, nil
	}
	if c := d.SourceTimestamp.Compare(o.SourceTimestamp); c != 0 {
		return c, nil
	}
	if d.SourcePicoseconds != o.SourcePicoseconds {
		if d.SourcePicoseconds < o.SourcePicoseconds {
			return -1, nil
		}
		return 1, nil
	}
	return d.Value.Compare(&o.Value)
}
