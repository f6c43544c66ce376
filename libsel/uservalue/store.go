package uservalue

import (
	"math"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/surfsel/surfsel/libsel/angle"
	"github.com/surfsel/surfsel/surfsel"
)

/***

User value store format:

	"uv/" + name  =>  record

	record (protobuf wire format):
		1: name  (bytes)
		2: value (fixed64, IEEE 754 double)

***/

const (
	kNameTag  = uint64(1<<3 | 2) // field 1, length delimited
	kValueTag = uint64(2<<3 | 1) // field 2, fixed64
)

var gKeyPrefix = []byte("uv/")

// Opts specifies params for opening a Store
type Opts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Store persists host user values (such as the threshold angle) across commands.
type Store struct {
	db       *badger.DB
	readOnly bool
}

func Open(opts Opts) (*Store, error) {
	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.New("DbPathName must be specified for a read-only store")
		}
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening user values %q", opts.DbPathName)
	}

	return &Store{
		db:       db,
		readOnly: opts.ReadOnly,
	}, nil
}

func (st *Store) Close() error {
	if st.db == nil {
		return nil
	}
	err := st.db.Close()
	st.db = nil
	return err
}

// Float returns the named value and whether it was found.
func (st *Store) Float(name string) (val float64, found bool, err error) {
	err = st.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(valueKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(raw []byte) error {
			var recName string
			recName, val, err = unmarshalRecord(raw)
			if err == nil && recName != name {
				err = errors.Wrapf(surfsel.ErrBadRecord, "record for %q holds %q", name, recName)
			}
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// SetFloat stores the named value.
func (st *Store) SetFloat(name string, val float64) error {
	if st.readOnly {
		return errors.Errorf("user value %q: store is read-only", name)
	}
	raw, err := marshalRecord(name, val)
	if err != nil {
		return err
	}
	return st.db.Update(func(txn *badger.Txn) error {
		return txn.Set(valueKey(name), raw)
	})
}

// Threshold returns the stored threshold angle.
//
// A missing or non-positive value is surfsel.ErrConfigurationMissing.
func (st *Store) Threshold() (s1.Angle, error) {
	val, found, err := st.Float(surfsel.ThresholdValueName)
	if err != nil {
		return 0, err
	}
	if !found || !angle.IsThreshold(val) {
		return 0, errors.Wrapf(surfsel.ErrConfigurationMissing, "user value %q", surfsel.ThresholdValueName)
	}
	return s1.Angle(val) * s1.Radian, nil
}

// SetThreshold stores the threshold angle, which must be positive and finite.
func (st *Store) SetThreshold(threshold s1.Angle) error {
	if !angle.IsThreshold(threshold.Radians()) {
		return errors.Errorf("threshold %v is not a positive finite angle", threshold.Radians())
	}
	return st.SetFloat(surfsel.ThresholdValueName, threshold.Radians())
}

// Prompter asks the user for a new threshold, given the current one (0 if unset).
//
// Returning surfsel.ErrHostValueUnavailable signals the user abandoned the edit.
type Prompter interface {
	PromptAngle(name string, current s1.Angle) (s1.Angle, error)
}

// EditThreshold interactively edits the stored threshold.
//
// An abandoned edit leaves the stored value untouched and is not an error.
func (st *Store) EditThreshold(prompt Prompter) (s1.Angle, error) {
	current, _, err := st.Float(surfsel.ThresholdValueName)
	if err != nil {
		return 0, err
	}

	threshold, err := prompt.PromptAngle(surfsel.ThresholdValueName, s1.Angle(current))
	if errors.Is(err, surfsel.ErrHostValueUnavailable) {
		klog.Infof("threshold edit abandoned, keeping %v", s1.Angle(current))
		return s1.Angle(current), nil
	}
	if err != nil {
		return 0, err
	}

	if err = st.SetThreshold(threshold); err != nil {
		return 0, err
	}
	klog.Infof("selection angle rads threshold set to %v", threshold.Radians())
	return threshold, nil
}

func valueKey(name string) []byte {
	key := make([]byte, 0, len(gKeyPrefix)+len(name))
	key = append(key, gKeyPrefix...)
	return append(key, name...)
}

func marshalRecord(name string, val float64) ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, len(name)+16))
	if err := buf.EncodeVarint(kNameTag); err != nil {
		return nil, err
	}
	if err := buf.EncodeStringBytes(name); err != nil {
		return nil, err
	}
	if err := buf.EncodeVarint(kValueTag); err != nil {
		return nil, err
	}
	if err := buf.EncodeFixed64(math.Float64bits(val)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalRecord(raw []byte) (name string, val float64, err error) {
	buf := proto.NewBuffer(raw)

	tag, err := buf.DecodeVarint()
	if err != nil || tag != kNameTag {
		return "", 0, errors.Wrap(surfsel.ErrBadRecord, "missing name field")
	}
	if name, err = buf.DecodeStringBytes(); err != nil {
		return "", 0, errors.Wrap(surfsel.ErrBadRecord, "bad name field")
	}

	tag, err = buf.DecodeVarint()
	if err != nil || tag != kValueTag {
		return "", 0, errors.Wrap(surfsel.ErrBadRecord, "missing value field")
	}
	bits, err := buf.DecodeFixed64()
	if err != nil {
		return "", 0, errors.Wrap(surfsel.ErrBadRecord, "bad value field")
	}

	return name, math.Float64frombits(bits), nil
}
