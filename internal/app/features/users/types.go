package users

import (
	"github.com/dalemusser/coursehub/internal/app/enrollment"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// valueResponse wraps create/update/add results, as clients expect.
type valueResponse struct {
	Value models.User `json:"valor"`
}

type deactivateResponse struct {
	User models.User `json:"usuario"`
}

type addCoursesRequest struct {
	Courses []string `json:"cursos" validate:"required,min=1,dive,objectid"`
}

type bulkResponse struct {
	enrollment.BulkResult
	TotalCreated int `json:"total_creados"`
	TotalSkipped int `json:"total_omitidos"`
}

func newBulkResponse(res enrollment.BulkResult) bulkResponse {
	return bulkResponse{
		BulkResult:   res,
		TotalCreated: len(res.Created),
		TotalSkipped: len(res.Skipped),
	}
}

// bulkFailure is the 500 body of a batch stopped by a store error; it still
// lists the users created before the failure.
type bulkFailure struct {
	respond.ErrorBody
	bulkResponse
}
