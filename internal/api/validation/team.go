package validation

import "strings"

// SetTeamRequest mirrors the fields needed for team upsert validation.
type SetTeamRequest struct {
	Name        string
	Owner       string
	LogoAssetID *int64
}

// ValidateSetTeamRequest validates the fields of a team upsert request.
func ValidateSetTeamRequest(req SetTeamRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 100 characters"})
	}

	if strings.TrimSpace(req.Owner) == "" {
		errs = append(errs, FieldError{Field: "owner", Message: "owner is required"})
	}

	if req.LogoAssetID != nil && *req.LogoAssetID <= 0 {
		errs = append(errs, FieldError{Field: "logoAssetId", Message: "logoAssetId must be a positive asset id"})
	}

	return errs
}
