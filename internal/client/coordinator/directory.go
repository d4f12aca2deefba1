package coordinator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/fixedpoint"
)

// Stats are summary counters derived from a snapshot. They are recomputed
// wholesale on every refresh, never incrementally maintained.
type Stats struct {
	Total      int
	Verified   int
	OwnedCount int
}

// Snapshot is the locally cached, best-effort-complete view of the record
// directory. It is immutable once published; Refresh replaces it atomically.
type Snapshot struct {
	All   []*Record
	Own   []*Record
	Stats Stats
}

// Search returns the records whose name or description contains term,
// case-insensitive. An empty term matches everything.
func (s *Snapshot) Search(term string) []*Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.All
	}
	var out []*Record
	for _, r := range s.All {
		if strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.Description), term) {
			out = append(out, r)
		}
	}
	return out
}

// RecentOwn returns up to n of the caller's own records, newest first.
func (s *Snapshot) RecentOwn(n int) []*Record {
	out := make([]*Record, len(s.Own))
	copy(out, s.Own)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Snapshot returns the current directory snapshot.
func (c *Coordinator) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Refresh synchronizes the directory from the ledger and reports the outcome
// through the status slot. On enumeration failure the previous snapshot is
// kept unchanged.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if err := c.refresh(ctx); err != nil {
		c.notifier.Error("Failed to load locations: " + err.Error())
		return err
	}
	c.notifier.Success("Locations updated")
	return nil
}

// refresh performs the synchronization silently. The creation and decryption
// pipelines call it after a successful write so their own terminal
// notification is not replaced.
func (c *Coordinator) refresh(ctx context.Context) error {
	ids, err := c.ledger.ListRecordIDs(ctx)
	if err != nil {
		return fmt.Errorf("enumerate records: %w", err)
	}

	account, _ := c.wallet.Account()

	all := make([]*Record, 0, len(ids))
	var own []*Record
	verified := 0

	for _, id := range ids {
		data, err := c.ledger.GetRecord(ctx, id)
		if err != nil {
			// Partial-success policy: log and keep going.
			c.log.Warn(ctx, "failed to fetch record", "id", id, "error", err.Error())
			continue
		}

		rec := recordFromData(data)
		all = append(all, rec)
		if rec.Verified {
			verified++
		}
		if account != "" && rec.Creator == account {
			own = append(own, rec)
		}
	}

	snapshot := &Snapshot{
		All: all,
		Own: own,
		Stats: Stats{
			Total:      len(all),
			Verified:   verified,
			OwnedCount: len(own),
		},
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	return nil
}

func recordFromData(data *api.RecordData) *Record {
	rec := &Record{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Creator:     data.Creator,
		CreatedAt:   data.CreatedAt,
		Radius:      data.Radius,
		Verified:    data.Verified,
		Longitude:   fixedpoint.Decode(data.PublicCoord),
	}
	if data.Verified {
		rec.Latitude = fixedpoint.Decode(data.RevealedValue)
	}
	return rec
}
