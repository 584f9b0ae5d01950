// Package seed holds the fixed sample data the mock API starts with and
// the logic that loads it into an empty store.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// DefaultOwnerID is the owner recorded on every seeded and uploaded file.
const DefaultOwnerID = 101

// Demo account available out of the box.
const (
	DemoEmail    = "demo@voblako.ru"
	DemoPassword = "password123"
)

// File is one sample entry. Aliases are stable handles the storage tree
// uses to reference seeded files.
type File struct {
	UUID        string
	Alias       string
	Filename    string
	ContentType string
	Content     string
}

var Files = []File{
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000001",
		Alias:       "welcome-note",
		Filename:    "Добро пожаловать.txt",
		ContentType: "text/plain",
		Content:     "Это ваш новый рабочий стол в VOblako. Загрузите сюда свои любимые проекты!",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000002",
		Alias:       "instructions",
		Filename:    "Инструкция.pdf",
		ContentType: "application/pdf",
		Content:     "PDF-содержимое инструкции (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000003",
		Alias:       "roadmap",
		Filename:    "Roadmap.pdf",
		ContentType: "application/pdf",
		Content:     "Дорожная карта проекта (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000004",
		Alias:       "moodboard",
		Filename:    "Moodboard.png",
		ContentType: "image/png",
		Content:     "PNG bytes placeholder",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000005",
		Alias:       "ui-kit",
		Filename:    "UI-kit.fig",
		ContentType: "application/octet-stream",
		Content:     "FIG файл (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000006",
		Alias:       "marketing-deck",
		Filename:    "Презентация.pptx",
		ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		Content:     "PPTX файл (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000007",
		Alias:       "contracts-a",
		Filename:    "Договор_А.pdf",
		ContentType: "application/pdf",
		Content:     "Договор А (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000008",
		Alias:       "contracts-b",
		Filename:    "Договор_Б.pdf",
		ContentType: "application/pdf",
		Content:     "Договор Б (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000009",
		Alias:       "report-q1",
		Filename:    "Отчет Q1.pdf",
		ContentType: "application/pdf",
		Content:     "Отчет Q1 (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000010",
		Alias:       "estimate",
		Filename:    "Смета.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     "XLSX файл (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000011",
		Alias:       "archive-notes",
		Filename:    "Заметки.txt",
		ContentType: "text/plain",
		Content:     "Архивные заметки",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000012",
		Alias:       "archive-photo",
		Filename:    "Фото.png",
		ContentType: "image/png",
		Content:     "Фото (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000013",
		Alias:       "promo-mov",
		Filename:    "Promo.mov",
		ContentType: "video/quicktime",
		Content:     "Видео PROMO (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000014",
		Alias:       "demo-mp4",
		Filename:    "Demo.mp4",
		ContentType: "video/mp4",
		Content:     "Видео DEMO (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000015",
		Alias:       "team-photo",
		Filename:    "Team.jpg",
		ContentType: "image/jpeg",
		Content:     "Фото команды",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000016",
		Alias:       "event-photo",
		Filename:    "Event.jpg",
		ContentType: "image/jpeg",
		Content:     "Фото мероприятия",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000017",
		Alias:       "cover-psd",
		Filename:    "Обложка.psd",
		ContentType: "image/vnd.adobe.photoshop",
		Content:     "PSD макет обложки",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000018",
		Alias:       "ticket",
		Filename:    "Ticket.pdf",
		ContentType: "application/pdf",
		Content:     "Билет на самолёт",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000019",
		Alias:       "hotel-doc",
		Filename:    "Hotel.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:     "Подтверждение брони",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000020",
		Alias:       "passport",
		Filename:    "Паспорт.png",
		ContentType: "image/png",
		Content:     "Скан паспорта",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000021",
		Alias:       "release-plan",
		Filename:    "Release Plan.txt",
		ContentType: "text/plain",
		Content: `VOblako Release Plan:

- Спортировать предпросмотр файлов (PDF/Text)
- Подключить синхронизацию с внешним API
- Подготовить демо-аккаунты для презентации`,
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000022",
		Alias:       "architecture-spec",
		Filename:    "Architecture Overview.pdf",
		ContentType: "application/pdf",
		Content:     "Документ с описанием архитектуры сервиса (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000023",
		Alias:       "mock-pdf",
		Filename:    "Скан договора.pdf",
		ContentType: "application/pdf",
		Content:     "Скан договора (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000024",
		Alias:       "mock-photo",
		Filename:    "Концепт обложки.jpg",
		ContentType: "image/jpeg",
		Content:     "Концепт обложки (заглушка)",
	},
	{
		UUID:        "11111111-aaaa-4a1a-9b11-000000000025",
		Alias:       "mock-text",
		Filename:    "PDF Tips.txt",
		ContentType: "text/plain",
		Content:     "Советы по работе с PDF (заглушка)",
	},
}

// FileIDs maps seed aliases to their UUIDs.
var FileIDs = func() map[string]string {
	ids := make(map[string]string, len(Files))
	for _, f := range Files {
		ids[f.Alias] = f.UUID
	}
	return ids
}()

// ApplyFiles loads the sample files into an empty store. Timestamps are
// staggered 15 minutes apart so seed order doubles as recency order.
func ApplyFiles(files repository.FileRepository, contents storage.Storage) error {
	count, err := files.Count()
	if err != nil {
		return fmt.Errorf("failed to count files: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, f := range Files {
		content := []byte(f.Content)
		timestamp := now.Add(-time.Duration(i) * 15 * time.Minute)

		meta := &model.FileMetadata{
			UUID:        f.UUID,
			OwnerID:     DefaultOwnerID,
			Filename:    f.Filename,
			ContentType: f.ContentType,
			Size:        int64(len(content)),
			IsDeleted:   false,
			UploadTime:  timestamp,
			UpdateTime:  timestamp,
		}

		err = contents.Save(f.UUID, bytes.NewReader(content))
		if err != nil {
			return fmt.Errorf("failed to seed content %s: %w", f.Alias, err)
		}
		err = files.Create(meta)
		if err != nil {
			return fmt.Errorf("failed to seed metadata %s: %w", f.Alias, err)
		}
	}

	return nil
}

// ApplyUsers creates the demo account unless it already exists.
func ApplyUsers(users repository.UserRepository) error {
	_, err := users.ByEmail(DemoEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to look up demo user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	_, err = users.Create(DemoEmail, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	return nil
}
