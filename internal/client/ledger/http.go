package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/sethvargo/go-retry"
)

// HTTPLedger implements Ledger over the node's JSON API. A session token,
// once obtained via OpenSession, is attached to write requests as a
// Bearer token.
type HTTPLedger struct {
	baseURL        string
	client         *http.Client
	token          string
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

func NewHTTPLedger(baseURL string, requestTimeout, confirmTimeout time.Duration) *HTTPLedger {
	return &HTTPLedger{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: requestTimeout},
		confirmTimeout: confirmTimeout,
		pollInterval:   200 * time.Millisecond,
	}
}

func (l *HTTPLedger) Close() error {
	l.client.CloseIdleConnections()
	return nil
}

// do performs a JSON request and decodes the response into out (if non-nil).
// Non-2xx responses are mapped onto the client error taxonomy.
func (l *HTTPLedger) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, l.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrNotConnected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return l.mapError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (l *HTTPLedger) mapError(resp *http.Response) error {
	var apiErr api.Error
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return fmt.Errorf("node error: status %d", resp.StatusCode)
	}

	switch apiErr.Code {
	case api.CodeAlreadyVerified:
		return fmt.Errorf("%w: %s", common.ErrAlreadyVerified, apiErr.Message)
	case api.CodeNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, apiErr.Message)
	case api.CodeInvalidProof:
		return fmt.Errorf("%w: %s", common.ErrInvalidProof, apiErr.Message)
	case api.CodeValidation:
		return fmt.Errorf("%w: %s", common.ErrValidation, apiErr.Message)
	case api.CodeUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrInvalidToken, apiErr.Message)
	default:
		return fmt.Errorf("node error: %s: %s", apiErr.Code, apiErr.Message)
	}
}

func (l *HTTPLedger) ContractAddress(ctx context.Context) (string, error) {
	var resp api.ContractResponse
	if err := l.do(ctx, http.MethodGet, "/contract", nil, &resp); err != nil {
		return "", err
	}
	return resp.Address, nil
}

// OpenSession obtains a bearer token for the given account and keeps it
// for subsequent write requests.
func (l *HTTPLedger) OpenSession(ctx context.Context, account string) error {
	var resp api.SessionResponse
	if err := l.do(ctx, http.MethodPost, "/session", api.SessionRequest{Account: account}, &resp); err != nil {
		return err
	}
	l.token = resp.Token
	return nil
}

func (l *HTTPLedger) ListRecordIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := l.do(ctx, http.MethodGet, "/records", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *HTTPLedger) GetRecord(ctx context.Context, id string) (*api.RecordData, error) {
	var rec api.RecordData
	if err := l.do(ctx, http.MethodGet, "/records/"+id, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (l *HTTPLedger) GetCiphertextHandle(ctx context.Context, id string) (string, error) {
	var resp api.HandleResponse
	if err := l.do(ctx, http.MethodGet, "/records/"+id+"/ciphertext", nil, &resp); err != nil {
		return "", err
	}
	return resp.Handle, nil
}

func (l *HTTPLedger) CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (string, error) {
	var resp api.TxResponse
	if err := l.do(ctx, http.MethodPost, "/records", req, &resp); err != nil {
		return "", err
	}
	return resp.Tx.ID, nil
}

func (l *HTTPLedger) SubmitVerification(ctx context.Context, id string, req *api.VerifyRequest) (string, error) {
	var resp api.TxResponse
	if err := l.do(ctx, http.MethodPost, "/records/"+id+"/verify", req, &resp); err != nil {
		return "", err
	}
	return resp.Tx.ID, nil
}

// AwaitConfirmation polls the transaction until the node reports it
// confirmed, backing off exponentially up to the configured timeout.
func (l *HTTPLedger) AwaitConfirmation(ctx context.Context, txID string) error {
	backoff := retry.WithMaxDuration(l.confirmTimeout, retry.NewExponential(l.pollInterval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var tx api.TxStatus
		if err := l.do(ctx, http.MethodGet, "/txs/"+txID, nil, &tx); err != nil {
			return retry.RetryableError(err)
		}
		if tx.Status != api.TxConfirmed {
			return retry.RetryableError(fmt.Errorf("tx %s still %s", txID, tx.Status))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSubmissionFailed, err)
	}
	return nil
}
