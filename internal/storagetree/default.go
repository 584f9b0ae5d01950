package storagetree

import (
	"github.com/voblako/voblako/internal/seed"
)

func ref(alias string) FileRef {
	return FileRef{FileID: seed.FileIDs[alias]}
}

func refWithPreview(alias, preview string) FileRef {
	return FileRef{FileID: seed.FileIDs[alias], Preview: preview}
}

// Default returns the fixed VOblako folder hierarchy, wired to the seeded
// sample files.
func Default() *Tree {
	return New(&Node{
		ID:    "root",
		Label: "Главная",
		Folders: []*Node{
			{
				ID:    "projects",
				Label: "Проекты",
				Folders: []*Node{
					{
						ID:    "design",
						Label: "Дизайн",
						Files: []FileRef{
							refWithPreview("moodboard", "/window.svg"),
							ref("ui-kit"),
						},
					},
					{
						ID:    "marketing",
						Label: "Маркетинг",
						Files: []FileRef{
							refWithPreview("marketing-deck", "/globe.svg"),
						},
					},
				},
				Files: []FileRef{ref("roadmap")},
			},
			{
				ID:    "documents",
				Label: "Документы",
				Folders: []*Node{
					{
						ID:    "contracts",
						Label: "Договоры",
						Files: []FileRef{
							ref("contracts-a"),
							ref("contracts-b"),
							ref("mock-pdf"),
						},
					},
				},
				Files: []FileRef{
					ref("report-q1"),
					ref("estimate"),
					ref("architecture-spec"),
				},
			},
			{
				ID:    "archive",
				Label: "Архив",
				Files: []FileRef{
					ref("archive-notes"),
					ref("archive-photo"),
					ref("release-plan"),
					ref("mock-text"),
				},
			},
			{
				ID:    "media",
				Label: "Медиа",
				Folders: []*Node{
					{
						ID:    "videos",
						Label: "Видео",
						Files: []FileRef{
							ref("promo-mov"),
							ref("demo-mp4"),
						},
					},
					{
						ID:    "photos",
						Label: "Фото",
						Files: []FileRef{
							ref("team-photo"),
							ref("event-photo"),
							ref("mock-photo"),
						},
					},
				},
				Files: []FileRef{ref("cover-psd")},
			},
			{
				ID:    "personal",
				Label: "Личное",
				Folders: []*Node{
					{
						ID:    "travels",
						Label: "Путешествия",
						Files: []FileRef{
							ref("ticket"),
							ref("hotel-doc"),
						},
					},
				},
				Files: []FileRef{ref("passport")},
			},
		},
		Files: []FileRef{
			ref("welcome-note"),
			ref("instructions"),
		},
	})
}
