package domain

const CategoryNotAvailable = "N/A"

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 完成した塗り絵ブック、または失敗した実行のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// BookTitle は表紙のタイトルです。(例: "Coloring Fun for Lily")
	BookTitle string `json:"book_title"`

	// ChildName は本の持ち主となる子どもの名前です。
	ChildName string `json:"child_name"`

	// Theme は塗り絵のテーマです。(例: "Space Dinosaurs")
	Theme string `json:"theme"`

	// GeneratedPages は通知時点で受信済みのページ数です。
	GeneratedPages int `json:"generated_pages"`

	// OutputCategory は結果の種別です。(例: "coloring-book", "error-report")
	OutputCategory string `json:"output_category"`
}

// NewNotificationRequest は実行状態から通知リクエストを組み立てます。
func NewNotificationRequest(s RunState, category string) NotificationRequest {
	if category == "" {
		category = CategoryNotAvailable
	}
	return NotificationRequest{
		BookTitle:      s.Request.BookTitle(),
		ChildName:      s.Request.ChildName,
		Theme:          s.Request.Theme,
		GeneratedPages: len(s.Pages),
		OutputCategory: category,
	}
}
