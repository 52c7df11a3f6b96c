package source

import "errors"

var UnsupportedSourceError = errors.New("This source does not support this query")
