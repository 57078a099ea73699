package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-page-builder/internal/service"
	"github.com/MKhiriev/go-page-builder/internal/store"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusMap is checked in order; the first sentinel found in the chain wins.
var errorStatusMap = []errorStatus{
	{service.ErrInvalidRequest, http.StatusBadRequest},
	{service.ErrEncodingOption, http.StatusBadRequest},
	{ErrInvalidEntityIDParam, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},

	{store.ErrEntityNotFound, http.StatusNotFound},
	{store.ErrSnapshotNotFound, http.StatusNotFound},
	{store.ErrSnapshotImmutable, http.StatusConflict},
	{store.ErrInvalidParent, http.StatusUnprocessableEntity},

	{service.ErrMaterializing, http.StatusInternalServerError},
	{store.ErrOptionListener, http.StatusInternalServerError},
	{service.ErrDeletingSnapshot, http.StatusInternalServerError},
	{service.ErrLoadingHostState, http.StatusInternalServerError},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
