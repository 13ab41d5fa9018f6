package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]repository.Job

	browseResult []repository.Job
	browseTotal  int
	browseCalls  int
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: map[uuid.UUID]repository.Job{}}
}

func (m *mockJobRepo) Create(ctx context.Context, j repository.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	m.jobs[j.ID] = j
	return nil
}

func (m *mockJobRepo) GetForClient(ctx context.Context, jobID, clientID uuid.UUID) (repository.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok || j.ClientID != clientID {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) GetOpenByID(ctx context.Context, jobID uuid.UUID) (repository.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok || j.Status != repository.JobStatusOpen {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]repository.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.Job
	for _, j := range m.jobs {
		if j.ClientID == clientID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockJobRepo) Update(ctx context.Context, j repository.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.ID]; !ok {
		return repository.ErrJobNotFound
	}
	j.UpdatedAt = time.Now()
	m.jobs[j.ID] = j
	return nil
}

func (m *mockJobRepo) DeleteForClient(ctx context.Context, jobID, clientID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok || j.ClientID != clientID {
		return repository.ErrJobNotFound
	}
	delete(m.jobs, jobID)
	return nil
}

func (m *mockJobRepo) CountsByClient(ctx context.Context, clientID uuid.UUID) (repository.JobStatusCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c repository.JobStatusCounts
	for _, j := range m.jobs {
		if j.ClientID != clientID {
			continue
		}
		c.Total++
		switch j.Status {
		case repository.JobStatusOpen:
			c.Open++
		case repository.JobStatusDraft:
			c.Draft++
		case repository.JobStatusClosed:
			c.Closed++
		}
	}
	return c, nil
}

func (m *mockJobRepo) TitleByID(ctx context.Context, jobID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return "", repository.ErrJobNotFound
	}
	return j.Title, nil
}

func (m *mockJobRepo) BrowseOpen(ctx context.Context, f repository.BrowseFilter) ([]repository.Job, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.browseCalls++
	return m.browseResult, m.browseTotal, nil
}

type mockApplicationRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]repository.ApplicationDetail
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: map[uuid.UUID]repository.ApplicationDetail{}}
}

func (m *mockApplicationRepo) Create(ctx context.Context, a repository.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.apps {
		if d.JobID == a.JobID && d.ApplicantID == a.ApplicantID {
			return repository.ErrDuplicateApplication
		}
	}
	a.AppliedAt = time.Now()
	m.apps[a.ID] = repository.ApplicationDetail{Application: a}
	return nil
}

func (m *mockApplicationRepo) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.apps {
		if d.JobID == jobID && d.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) GetDetail(ctx context.Context, id uuid.UUID) (repository.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.apps[id]
	if !ok {
		return repository.ApplicationDetail{}, repository.ErrApplicationNotFound
	}
	return d, nil
}

func (m *mockApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]repository.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.ApplicationDetail
	for _, d := range m.apps {
		if d.JobID == jobID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByJobOwner(ctx context.Context, clientID uuid.UUID) ([]repository.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.ApplicationDetail
	for _, d := range m.apps {
		if d.JobClientID == clientID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByApplicants(ctx context.Context, applicantIDs []uuid.UUID) ([]repository.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range applicantIDs {
		want[id] = true
	}
	var out []repository.ApplicationDetail
	for _, d := range m.apps {
		if want[d.ApplicantID] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) JobIDsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uuid.UUID
	for _, d := range m.apps {
		if d.ApplicantID == applicantID {
			out = append(out, d.JobID)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) CountsByApplicant(ctx context.Context, applicantID uuid.UUID) (repository.ApplicationCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c repository.ApplicationCounts
	for _, d := range m.apps {
		if d.ApplicantID != applicantID {
			continue
		}
		c.Total++
		switch d.Status {
		case repository.ApplicationStatusPending:
			c.Pending++
		case repository.ApplicationStatusAccepted:
			c.Accepted++
		case repository.ApplicationStatusRejected:
			c.Rejected++
		}
	}
	return c, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	d.Status = status
	m.apps[id] = d
	return nil
}

type mockProfileRepo struct {
	mu       sync.Mutex
	byUserID map[uuid.UUID]repository.Profile

	searchRows  []repository.ProfileWithIdentity
	searchTotal int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{byUserID: map[uuid.UUID]repository.Profile{}}
}

func (m *mockProfileRepo) Create(ctx context.Context, p repository.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byUserID[p.UserID]; ok {
		return repository.ErrProfileExists
	}
	m.byUserID[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byUserID[userID]
	if !ok {
		return repository.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p repository.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byUserID[p.UserID]; !ok {
		return repository.ErrProfileNotFound
	}
	m.byUserID[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) Search(ctx context.Context, f repository.ProfileSearchFilter) ([]repository.ProfileWithIdentity, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchRows, m.searchTotal, nil
}

type mockNotificationRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]repository.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{byID: map[uuid.UUID]repository.Notification{}}
}

func (m *mockNotificationRepo) Insert(ctx context.Context, n repository.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.CreatedAt = time.Now()
	m.byID[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) BulkInsert(ctx context.Context, ns []repository.Notification) error {
	for _, n := range ns {
		if err := m.Insert(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]repository.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.Notification
	for _, n := range m.byID {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.byID {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (repository.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.byID[id]
	if !ok || n.RecipientID != recipientID || n.Read {
		return repository.Notification{}, repository.ErrNotificationNotFound
	}
	n.Read = true
	m.byID[id] = n
	return n, nil
}

func (m *mockNotificationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, n := range m.byID {
		if n.CreatedAt.Before(cutoff) {
			delete(m.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

type recordedDecision struct {
	freelancerID  uuid.UUID
	clientID      uuid.UUID
	jobID         uuid.UUID
	applicationID uuid.UUID
	status        string
}

type mockNotifier struct {
	mu        sync.Mutex
	opened    []uuid.UUID
	decisions []recordedDecision
}

func (m *mockNotifier) JobOpened(jobID uuid.UUID, jobTitle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, jobID)
}

func (m *mockNotifier) ApplicationDecided(freelancerID, clientID, jobID, applicationID uuid.UUID, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, recordedDecision{freelancerID, clientID, jobID, applicationID, status})
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	sets    int
	nxKeys  []string
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string][]byte{}}
}

func (m *mockCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = b
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	delete(m.entries, key)
	return nil
}

func (m *mockCache) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nxKeys = append(m.nxKeys, key)
	if _, ok := m.entries[key]; ok {
		return false, nil
	}
	m.entries[key] = []byte(value)
	return true, nil
}

func (m *mockCache) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
