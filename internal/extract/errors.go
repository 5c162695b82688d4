package extract

import "errors"

var ErrInvalidPDF = errors.New("invalid pdf")
