package srtb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const valuesPath = "largeStringValuesContainer.values"

var (
	ErrInvalidBundle = errors.New("chart bundle is not valid JSON")
	ErrKeyNotFound   = errors.New("key not found in chart bundle")
)

// Bundle is a chart bundle (.srtb). Values are read and edited in place so
// everything else in the document keeps its layout.
type Bundle struct {
	data []byte
}

func Open(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Bundle, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidBundle
	}
	return &Bundle{data: data}, nil
}

func (b *Bundle) Bytes() []byte {
	return b.data
}

// index returns the position of key in the large string values, or -1.
func (b *Bundle) index(key string) int {
	found := -1
	i := 0
	gjson.GetBytes(b.data, valuesPath).ForEach(func(_, v gjson.Result) bool {
		if v.Get("key").String() == key {
			found = i
			return false
		}
		i++
		return true
	})
	return found
}

func (b *Bundle) Keys() []string {
	keys := []string{}
	gjson.GetBytes(b.data, valuesPath).ForEach(func(_, v gjson.Result) bool {
		keys = append(keys, v.Get("key").String())
		return true
	})
	return keys
}

func (b *Bundle) HasValue(key string) bool {
	return b.index(key) >= 0
}

func (b *Bundle) Value(key string) (string, error) {
	i := b.index(key)
	if i < 0 {
		return "", ErrKeyNotFound
	}
	return gjson.GetBytes(b.data, fmt.Sprintf("%s.%d.val", valuesPath, i)).String(), nil
}

// SetValue replaces the value for key, or appends a new entry.
func (b *Bundle) SetValue(key, val string) error {
	var (
		data []byte
		err  error
	)
	entry := map[string]string{"key": key, "val": val}
	if i := b.index(key); i >= 0 {
		data, err = sjson.SetBytes(b.data, fmt.Sprintf("%s.%d.val", valuesPath, i), val)
	} else if gjson.GetBytes(b.data, valuesPath).IsArray() {
		data, err = sjson.SetBytes(b.data, valuesPath+".-1", entry)
	} else {
		data, err = sjson.SetBytes(b.data, valuesPath, []map[string]string{entry})
	}
	if nil != err {
		return fmt.Errorf("unable to set %v: %w", key, err)
	}
	b.data = data
	return nil
}

func (b *Bundle) DeleteValue(key string) error {
	i := b.index(key)
	if i < 0 {
		return ErrKeyNotFound
	}
	data, err := sjson.DeleteBytes(b.data, fmt.Sprintf("%s.%d", valuesPath, i))
	if nil != err {
		return fmt.Errorf("unable to delete %v: %w", key, err)
	}
	b.data = data
	return nil
}

// Save writes the bundle next to path and renames it over the original.
func (b *Bundle) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if nil != err {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b.data); nil != err {
		tmp.Close()
		return fmt.Errorf("unable to write bundle: %w", err)
	}
	if err := tmp.Close(); nil != err {
		return fmt.Errorf("unable to write bundle: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
