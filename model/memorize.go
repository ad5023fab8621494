package model

import (
	"encoding/gob"
	"io"

	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/zorros"
)

/*
Memorize writes a fitted predictor to w as an xz-compressed gob stream.
The predictor's concrete type must be gob-registered; the built-in
learner families register theirs at init.
*/
func Memorize(w io.Writer, m Predictor) error {
	zw, err := xz.NewWriter(w)
	if err != nil {
		return zorros.Trace(err)
	}
	if err := gob.NewEncoder(zw).Encode(&m); err != nil {
		return zorros.Trace(err)
	}
	if err := zw.Close(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
Recall reads a predictor written by Memorize
*/
func Recall(r io.Reader) (Predictor, error) {
	zr, err := xz.NewReader(r)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	var m Predictor
	if err := gob.NewDecoder(zr).Decode(&m); err != nil {
		return nil, zorros.Trace(err)
	}
	return m, nil
}
