package inquiry

import "errors"

// ErrInquiryNotFound when the inquiry does not exist
var ErrInquiryNotFound = errors.New("inquiry not found")
