package taskclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

var serverTime = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func task(id int64, title string) Task {
	return Task{
		ID:        id,
		Title:     title,
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: serverTime,
		UpdatedAt: serverTime,
	}
}

func titles(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func ids(tasks []Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string][]string) {
	body := map[string]interface{}{"code": status, "message": message}
	if fields != nil {
		body["errors"] = fields
	}
	writeJSON(w, status, map[string]interface{}{"error": body})
}

type apiFailure struct {
	status int
	fields map[string][]string
}

// fakeAPI serves the task endpoints from memory. Create can be held open after
// the task is stored to observe the board while the response is in flight.
type fakeAPI struct {
	mu            sync.Mutex
	tasks         []Task
	nextID        int64
	failures      map[string]apiFailure
	createStarted chan struct{}
	createRelease chan struct{}
}

func newFakeAPI(t *testing.T, tasks ...Task) (*fakeAPI, *Client) {
	t.Helper()

	api := &fakeAPI{
		tasks:    tasks,
		nextID:   int64(len(tasks)) + 1,
		failures: map[string]apiFailure{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", api.list)
	mux.HandleFunc("POST /api/tasks", api.create)
	mux.HandleFunc("PATCH /api/tasks/{id}", api.update)
	mux.HandleFunc("DELETE /api/tasks/{id}", api.delete)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return api, New(server.URL, WithToken("token"))
}

func (a *fakeAPI) fail(method, id string, status int, fields map[string][]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[method+" "+id] = apiFailure{status: status, fields: fields}
}

// holdCreate makes the next create calls store the task, then wait until
// release is closed before responding.
func (a *fakeAPI) holdCreate() (started <-chan struct{}, release chan struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.createStarted = make(chan struct{}, 1)
	a.createRelease = make(chan struct{})
	return a.createStarted, a.createRelease
}

func (a *fakeAPI) failure(r *http.Request) (apiFailure, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.failures[r.Method+" "+r.PathValue("id")]
	return f, ok
}

func (a *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data := append([]Task{}, a.tasks...)
	writeJSON(w, http.StatusOK, TaskPage{
		Data: data,
		Meta: PageMeta{CurrentPage: 1, LastPage: 1, PerPage: 15, Total: int64(len(data))},
	})
}

func (a *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.failure(r); ok {
		writeError(w, f.status, "rejected", f.fields)
		return
	}

	var input TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.", nil)
		return
	}

	a.mu.Lock()
	created := task(a.nextID, input.Title)
	created.Description = input.Description
	created.Status = input.Status
	created.Priority = input.Priority
	created.DueDate = input.DueDate
	a.nextID++
	a.tasks = append([]Task{created}, a.tasks...)
	started, release := a.createStarted, a.createRelease
	a.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Task created successfully", "data": created})
}

func (a *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.failure(r); ok {
		writeError(w, f.status, "rejected", f.fields)
		return
	}

	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	var body map[string]*string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.", nil)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i, t := range a.tasks {
		if t.ID != id {
			continue
		}
		for key, value := range body {
			switch key {
			case "title":
				t.Title = *value
			case "status":
				t.Status = *value
			case "priority":
				t.Priority = *value
			case "description":
				t.Description = value
			case "due_date":
				t.DueDate = value
			}
		}
		t.UpdatedAt = serverTime.Add(time.Hour)
		a.tasks[i] = t
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Task updated successfully", "data": t})
		return
	}
	writeError(w, http.StatusNotFound, "Task not found.", nil)
}

func (a *fakeAPI) delete(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.failure(r); ok {
		writeError(w, f.status, "rejected", f.fields)
		return
	}

	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	a.mu.Lock()
	defer a.mu.Unlock()
	for i, t := range a.tasks {
		if t.ID == id {
			a.tasks = append(a.tasks[:i:i], a.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found.", nil)
}
