package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// Big integers are rendered as decimal strings. JSON numbers lose precision
// past 2^53 in most consumers.

type CapacityResponse struct {
	TotalPrincipalCapacity string `json:"totalPrincipalCapacity"`
	PrincipalUsdEquivalent string `json:"principalUsdEquivalent"`
	Truncated              bool   `json:"truncated"`
	ComputedAt             int64  `json:"computedAt"`
	Stale                  bool   `json:"stale"`
}

type RatioResponse struct {
	RatioBps string `json:"ratioBps"`
	Tier     string `json:"tier"`
	Stale    bool   `json:"stale"`
}

type BalancesResponse struct {
	UnallocatedCollateral string `json:"unallocatedCollateral"`
	AllocatedCollateral   string `json:"allocatedCollateral"`
	BackedLiabilityShares string `json:"backedLiabilityShares"`
}

type PositionResponse struct {
	PositionID    string           `json:"positionId"`
	EscrowAddress string           `json:"escrowAddress"`
	Balances      BalancesResponse `json:"balances"`
	RatioResponse
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func NewCapacityResponse(r *types.CapacityResult) CapacityResponse {
	return CapacityResponse{
		TotalPrincipalCapacity: r.TotalPrincipalCapacity.Dec(),
		PrincipalUsdEquivalent: r.PrincipalUsdEquivalent.Dec(),
		Truncated:              r.Truncated,
		ComputedAt:             r.ComputedAt.Unix(),
		Stale:                  r.Stale,
	}
}

func NewRatioResponse(r types.RatioResult) RatioResponse {
	return RatioResponse{
		RatioBps: r.RatioString(),
		Tier:     r.Tier.String(),
		Stale:    r.Stale,
	}
}

func NewPositionResponse(p *types.PositionSummary) PositionResponse {
	return PositionResponse{
		PositionID:    strconv.FormatUint(p.PositionID, 10),
		EscrowAddress: p.EscrowAddress.Hex(),
		Balances: BalancesResponse{
			UnallocatedCollateral: decOrZero(p.Balances.UnallocatedCollateral),
			AllocatedCollateral:   decOrZero(p.Balances.AllocatedCollateral),
			BackedLiabilityShares: decOrZero(p.Balances.BackedLiabilityShares),
		},
		RatioResponse: NewRatioResponse(p.Ratio),
	}
}

func decOrZero(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// writeError answers with the status carried by a *types.Error, or 500 for
// anything unclassified.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := types.InternalServiceError
	message := "internal service error"

	var typed *types.Error
	if errors.As(err, &typed) {
		status = typed.StatusCode
		code = typed.ErrorCode
		message = err.Error()
	}

	log := log.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}

	writeJSON(w, status, ErrorResponse{ErrorCode: code.String(), Message: message})
}
