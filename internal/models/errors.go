package models

import "github.com/bank-statementer/statementer/internal/parsererror"

func errEmptyField(name string) error {
	return &parsererror.ValidationError{Field: name, Reason: "is required"}
}
