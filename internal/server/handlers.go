package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/tharunlokeshu/agriscout/internal/advisory"
	"github.com/tharunlokeshu/agriscout/internal/discover"
	"github.com/tharunlokeshu/agriscout/internal/store"
)

type vendorsRequest struct {
	Location     string `json:"location"`
	RadiusMeters int    `json:"search_radius_meters"`
	MaxResults   int    `json:"max_results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeVendorsRequest(r *http.Request) (vendorsRequest, error) {
	var req vendorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON body")
	}
	if req.Location == "" {
		return req, fmt.Errorf("location is required")
	}
	return req, nil
}

// handleVendors runs discovery and returns the text table. Source
// failures and empty results are normal outcomes, never 5xx.
func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	req, err := decodeVendorsRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table := s.discoverer.Document(r.Context(), discover.Request{
		Location:     req.Location,
		RadiusMeters: req.RadiusMeters,
		MaxResults:   req.MaxResults,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(table))
}

// handleVendorsPDF runs discovery and returns the contactable-vendors
// report as a PDF attachment.
func (s *Server) handleVendorsPDF(w http.ResponseWriter, r *http.Request) {
	req, err := decodeVendorsRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pdf, err := s.discoverer.PDFReport(r.Context(), discover.Request{
		Location:     req.Location,
		RadiusMeters: req.RadiusMeters,
		MaxResults:   req.MaxResults,
	})
	if err != nil {
		s.logger.Error("pdf generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="agri_vendors_%s.pdf"`, store.SanitizeLocation(req.Location)))
	_, _ = w.Write(pdf)
}

type userInputRequest struct {
	UserID        string `json:"userId"`
	Location      string `json:"location"`
	LandSize      string `json:"landSize"`
	LandType      string `json:"landType"`
	LandHealth    string `json:"landHealth"`
	Season        string `json:"season"`
	WaterFacility string `json:"waterFacility"`
	Duration      string `json:"duration"`
}

func (u userInputRequest) validate() error {
	if u.Location == "" || u.LandSize == "" || u.LandType == "" ||
		u.Season == "" || u.WaterFacility == "" || u.Duration == "" {
		return fmt.Errorf("missing required fields")
	}
	return nil
}

func (s *Server) handleSaveUserInput(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "history is disabled")
		return
	}

	var req userInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.history.SaveInput(r.Context(), store.UserInput{
		UserID:        req.UserID,
		Location:      req.Location,
		LandSize:      req.LandSize,
		LandType:      req.LandType,
		LandHealth:    req.LandHealth,
		Season:        req.Season,
		WaterFacility: req.WaterFacility,
		Duration:      req.Duration,
	})
	if err != nil {
		s.logger.Error("save user input failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save user input")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (s *Server) handleUserInputs(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "history is disabled")
		return
	}

	userID := r.PathValue("userId")
	inputs, err := s.history.InputsForUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("fetch user inputs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch user inputs")
		return
	}
	if inputs == nil {
		inputs = []store.UserInput{}
	}
	writeJSON(w, http.StatusOK, inputs)
}

// handleDiscoveries lists recent discovery runs, newest first.
func (s *Server) handleDiscoveries(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "history is disabled")
		return
	}

	discoveries, err := s.history.RecentDiscoveries(r.Context(), 50)
	if err != nil {
		s.logger.Error("fetch discoveries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch discoveries")
		return
	}
	if discoveries == nil {
		discoveries = []store.Discovery{}
	}
	writeJSON(w, http.StatusOK, discoveries)
}

// handleRecommendedCrops always answers with exactly five crops; a
// missing or failing provider degrades to the default set.
func (s *Server) handleRecommendedCrops(w http.ResponseWriter, r *http.Request) {
	var req userInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	advisor := s.advisor
	if advisor == nil {
		advisor = advisory.NewAdvisor(nil, s.logger)
	}

	crops := advisor.RecommendCrops(r.Context(), advisory.Inputs{
		Location:      req.Location,
		LandSize:      req.LandSize,
		LandType:      req.LandType,
		LandHealth:    req.LandHealth,
		Season:        req.Season,
		WaterFacility: req.WaterFacility,
		Duration:      req.Duration,
	})
	writeJSON(w, http.StatusOK, map[string]any{"crops": crops})
}
