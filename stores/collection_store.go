package stores

import (
	"context"
	"fmt"
	"sync"

	"catalog_admin_go/api"
	"catalog_admin_go/models"
)

// CollectionStore — контроллер коллекции одной сущности каталога.
// Держит кешированную проекцию коллекции, текущую "выбранную" сущность,
// флаг загрузки и слот ошибки. Все операции следуют одному конверту:
// loading=true -> вызов -> loading=false, err очищается при успехе и
// заполняется при ошибке. Параллельные вызовы не дедуплицируются и не
// отменяются: состояние перезаписывается целиком тем ответом, который
// завершился последним.
type CollectionStore[E any] struct {
	api  *api.Client
	base string
	id   func(E) int64

	mu      sync.Mutex
	items   []E
	focused *E
	loading bool
	err     string
}

// NewCollectionStore создает контроллер над ресурсом base (например "/tests").
// id извлекает идентификатор сущности для замены и удаления по id.
func NewCollectionStore[E any](client *api.Client, base string, id func(E) int64) *CollectionStore[E] {
	return &CollectionStore[E]{api: client, base: base, id: id}
}

// NewTestStore создает контроллер коллекции Test.
func NewTestStore(client *api.Client) *CollectionStore[models.Test] {
	return NewCollectionStore(client, "/tests", func(t models.Test) int64 { return t.ID })
}

// NewTestChildStore создает контроллер коллекции TestChild.
func NewTestChildStore(client *api.Client) *CollectionStore[models.TestChild] {
	return NewCollectionStore(client, "/testsChild", func(c models.TestChild) int64 { return c.ID })
}

// FetchAll загружает коллекцию целиком. Поле изображений каждой сущности
// (включая вложенное test.image у TestChild) нормализуется при декодировании.
func (s *CollectionStore[E]) FetchAll(ctx context.Context) error {
	s.begin()

	var resp models.Envelope[[]E]
	err := s.api.GetJSON(ctx, s.base, &resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}
	s.items = resp.Data
	s.err = ""
	return nil
}

// FetchOne загружает одну сущность и делает ее выбранной.
func (s *CollectionStore[E]) FetchOne(ctx context.Context, id int64) error {
	s.begin()

	var resp models.Envelope[E]
	err := s.api.GetJSON(ctx, fmt.Sprintf("%s/%d", s.base, id), &resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}
	s.focused = &resp.Data
	s.err = ""
	return nil
}

// Create отправляет multipart-форму (текстовые поля и файлы под повторяющимся
// полем "image") и дописывает созданную сущность в конец коллекции.
func (s *CollectionStore[E]) Create(ctx context.Context, form *api.Form) error {
	s.begin()

	var created E
	err := s.api.PostForm(ctx, s.base, form, &created)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}
	s.items = append(s.items, created)
	s.err = ""
	return nil
}

// Update отправляет multipart-форму на подпуть редактирования и заменяет
// сущность с тем же id в коллекции.
func (s *CollectionStore[E]) Update(ctx context.Context, id int64, form *api.Form) error {
	s.begin()

	var updated E
	err := s.api.PatchForm(ctx, fmt.Sprintf("%s/edit/%d", s.base, id), form, &updated)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = updated
		}
	}
	s.err = ""
	return nil
}

// Delete удаляет сущность на сервере и выфильтровывает ее из коллекции по id.
func (s *CollectionStore[E]) Delete(ctx context.Context, id int64) error {
	s.begin()

	err := s.api.Delete(ctx, fmt.Sprintf("%s/delete/%d", s.base, id))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}
	kept := s.items[:0]
	for _, item := range s.items {
		if s.id(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.err = ""
	return nil
}

func (s *CollectionStore[E]) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Items возвращает копию кешированной коллекции.
func (s *CollectionStore[E]) Items() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Focused возвращает выбранную сущность (nil, если ее нет).
func (s *CollectionStore[E]) Focused() *E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Loading сообщает, выполняется ли сейчас сетевой вызов.
func (s *CollectionStore[E]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err возвращает сообщение последней ошибки (пустая строка, если ее нет).
func (s *CollectionStore[E]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
