package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/node/auth"
	"github.com/gorilla/mux"
)

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req api.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Account == "" {
		writeError(w, http.StatusBadRequest, api.CodeValidation, "account is required")
		return
	}

	token, err := auth.GenerateToken(req.Account, s.secretKey, s.tokenValidity)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, api.CodeInternal, "could not open session")
		return
	}
	writeJSON(w, http.StatusOK, api.SessionResponse{Token: token})
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.ContractResponse{Address: s.ledger.ContractAddress()})
}

func (s *Server) handleListRecordIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.ledger.ListRecordIDs(r.Context())
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, err := s.ledger.GetRecord(r.Context(), id)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleGetHandle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	handle, err := s.ledger.GetHandle(r.Context(), id)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.HandleResponse{Handle: handle})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, api.CodeValidation, "malformed request body")
		return
	}

	tx, err := s.ledger.CreateRecord(r.Context(), accountFrom(r.Context()), &req)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.TxResponse{Tx: *tx})
}

func (s *Server) handleVerifyRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req api.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, api.CodeValidation, "malformed request body")
		return
	}

	tx, err := s.ledger.VerifyRecord(r.Context(), id, &req)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.TxResponse{Tx: *tx})
}

func (s *Server) handleTxStatus(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.TxStatus(mux.Vars(r)["id"])
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// writeLedgerError maps service errors onto HTTP statuses. The already
// verified case gets its own code so clients can treat the race as benign.
func (s *Server) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrAlreadyVerified):
		writeError(w, http.StatusConflict, api.CodeAlreadyVerified, "Data already verified")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, api.CodeNotFound, "record not found")
	case errors.Is(err, common.ErrInvalidProof):
		writeError(w, http.StatusBadRequest, api.CodeInvalidProof, "proof rejected")
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, api.CodeValidation, err.Error())
	default:
		s.log.Error(r.Context(), "ledger operation failed", "err", err)
		writeError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
	}
}
