package validation

import "strings"

// AssignRequest mirrors the fields needed for assignment validation.
type AssignRequest struct {
	Username string
	Team     string
	Rank     string
}

// ValidateAssignRequest validates the fields of an assignment request.
func ValidateAssignRequest(req AssignRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	}

	if strings.TrimSpace(req.Team) == "" {
		errs = append(errs, FieldError{Field: "team", Message: "team is required"})
	}

	if strings.TrimSpace(req.Rank) == "" {
		errs = append(errs, FieldError{Field: "rank", Message: "rank is required"})
	}

	return errs
}
