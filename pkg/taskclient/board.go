package taskclient

import (
	"context"
	"sync"

	"taskboard/pkg/optimistic"
)

// Board is the client-side task list. Mutations show up in Tasks immediately and
// are rolled back individually when the server rejects them.
type Board struct {
	client *Client
	state  *optimistic.Controller[[]Task]

	mu      sync.Mutex
	meta    PageMeta
	pending map[int64]int
	tempID  int64
	lastErr error
}

func NewBoard(client *Client) *Board {
	return &Board{
		client:  client,
		state:   optimistic.New([]Task{}),
		pending: map[int64]int{},
	}
}

func (b *Board) Tasks() []Task {
	return b.state.State()
}

func (b *Board) Meta() PageMeta {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meta
}

// IsPending reports whether a mutation on the task is in flight.
func (b *Board) IsPending(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[id] > 0
}

func (b *Board) IsOptimistic() bool {
	return b.state.IsOptimistic()
}

// LastError is the most recent failure of any Board call.
func (b *Board) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

func (b *Board) ClearError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = nil
}

func (b *Board) OnChange(fn func([]Task)) func() {
	return b.state.OnChange(fn)
}

// Fetch replaces the confirmed list with a server page. Mutations still in
// flight stay projected on top of it.
func (b *Board) Fetch(ctx context.Context, params ListParams) error {
	page, err := b.client.ListTasks(ctx, params)
	if err != nil {
		return b.fail(err)
	}

	b.mu.Lock()
	b.meta = page.Meta
	b.mu.Unlock()

	b.state.Reset(page.Data)
	return nil
}

// Create shows a provisional task with a negative id at the front of the list
// and swaps it for the server's task once confirmed.
func (b *Board) Create(ctx context.Context, input TaskInput) (Task, error) {
	provisional := Task{
		ID:          b.nextTempID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	b.track(provisional.ID)
	defer b.untrack(provisional.ID)

	var (
		created Task
		fetched bool
	)
	err := b.state.Apply(ctx, prepend(provisional), func(ctx context.Context) (optimistic.Projection[[]Task], error) {
		task, err := b.client.CreateTask(ctx, input)
		if err != nil {
			return nil, err
		}
		created = task
		// A Fetch that finished while the create was in flight may already
		// hold the task, and its total already counts it.
		return func(tasks []Task) []Task {
			rest := without(task.ID)(tasks)
			fetched = len(rest) < len(tasks)
			return prepend(task)(rest)
		}, nil
	})
	if err != nil {
		return Task{}, b.fail(err)
	}

	if !fetched {
		b.mu.Lock()
		b.meta.Total++
		b.mu.Unlock()
	}

	return created, nil
}

func (b *Board) Update(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	if id < 0 {
		return Task{}, b.fail(provisionalError())
	}

	b.track(id)
	defer b.untrack(id)

	var updated Task
	project := func(tasks []Task) []Task {
		return replace(tasks, id, patch.apply)
	}
	err := b.state.Apply(ctx, project, func(ctx context.Context) (optimistic.Projection[[]Task], error) {
		task, err := b.client.UpdateTask(ctx, id, patch)
		if err != nil {
			return nil, err
		}
		updated = task
		return func(tasks []Task) []Task {
			return replace(tasks, id, func(Task) Task { return task })
		}, nil
	})
	if err != nil {
		return Task{}, b.fail(err)
	}
	return updated, nil
}

func (b *Board) Delete(ctx context.Context, id int64) error {
	if id < 0 {
		return b.fail(provisionalError())
	}

	b.track(id)
	defer b.untrack(id)

	err := b.state.Apply(ctx, without(id), func(ctx context.Context) (optimistic.Projection[[]Task], error) {
		if err := b.client.DeleteTask(ctx, id); err != nil {
			return nil, err
		}
		return without(id), nil
	})
	if err != nil {
		return b.fail(err)
	}

	b.mu.Lock()
	if b.meta.Total > 0 {
		b.meta.Total--
	}
	b.mu.Unlock()

	return nil
}

func (b *Board) nextTempID() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tempID--
	return b.tempID
}

func (b *Board) track(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[id]++
}

func (b *Board) untrack(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending[id] <= 1 {
		delete(b.pending, id)
		return
	}
	b.pending[id]--
}

func (b *Board) fail(err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	return err
}

func provisionalError() *Error {
	return &Error{Kind: KindValidation, Message: ErrProvisionalTask.Error(), Err: ErrProvisionalTask}
}

func prepend(task Task) optimistic.Projection[[]Task] {
	return func(tasks []Task) []Task {
		out := make([]Task, 0, len(tasks)+1)
		out = append(out, task)
		return append(out, tasks...)
	}
}

func without(id int64) optimistic.Projection[[]Task] {
	return func(tasks []Task) []Task {
		out := make([]Task, 0, len(tasks))
		for _, task := range tasks {
			if task.ID != id {
				out = append(out, task)
			}
		}
		return out
	}
}

func replace(tasks []Task, id int64, fn func(Task) Task) []Task {
	out := make([]Task, len(tasks))
	for i, task := range tasks {
		if task.ID == id {
			task = fn(task)
		}
		out[i] = task
	}
	return out
}
