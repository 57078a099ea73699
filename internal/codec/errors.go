package codec

import "errors"

var (
	ErrEncodingAttribute = errors.New("error encoding shortcode attribute")
	ErrDecodingAttribute = errors.New("error decoding shortcode attribute")
)
