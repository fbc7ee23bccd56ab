package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

func (s *Server) healthcheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getMintableCapacity(w http.ResponseWriter, r *http.Request) {
	chainID, err := uintParam(r, "chainId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.readModel.GetMintableCapacity(r.Context(), chainID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewCapacityResponse(result))
}

func (s *Server) getSystemRatio(w http.ResponseWriter, r *http.Request) {
	chainID, err := uintParam(r, "chainId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.readModel.GetSystemRatio(r.Context(), chainID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewRatioResponse(result))
}

func (s *Server) getPositionRatio(w http.ResponseWriter, r *http.Request) {
	chainID, err := uintParam(r, "chainId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	positionID, err := uintParam(r, "positionId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.readModel.GetPositionRatio(r.Context(), chainID, positionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewPositionResponse(summary))
}

func uintParam(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, fmt.Sprintf("invalid %s %q", name, raw))
	}
	return v, nil
}
