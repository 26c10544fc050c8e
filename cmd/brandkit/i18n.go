// Package main provides localization for the brandkit CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Generate brand-compliant avatars and banners": "ブランド準拠のアバターとバナーを生成",

		// Commands
		"Generate a square avatar image":                        "正方形のアバター画像を生成",
		"Generate a social-network banner or post image":        "SNS用のバナーまたは投稿画像を生成",
		"Generate avatars for every color and size combination": "すべての色とサイズの組み合わせでアバターを生成",
		"List brand colors and their shadow mapping":            "ブランドカラーとシャドウの対応を一覧表示",

		// Flags
		"Path to a YAML configuration file":            "YAML設定ファイルのパス",
		"Subject cutout image (PNG with alpha)":        "被写体の切り抜き画像（アルファ付きPNG）",
		"Background palette color name":                "背景のパレットカラー名",
		"Caption text along the bottom edge":           "下端に表示するキャプション",
		"Disable the drop silhouette":                  "ドロップシルエットを無効化",
		"Output format (png or jpeg)":                  "出力フォーマット（pngまたはjpeg）",
		"Maximum output size in bytes (0 = unconstrained)": "出力サイズの上限（バイト、0は無制限）",
		"Save intermediate artifacts for inspection":   "中間成果物を保存",
		"Directory for debug output":                   "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":         "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                      "すべてのログ出力を抑制",
		"Avatar edge length in pixels":                 "アバターの一辺の長さ（ピクセル）",
		"Output image file path":                       "出力画像ファイルのパス",
		"Platform preset (x-banner or og-post)":        "プラットフォームプリセット（x-bannerまたはog-post）",
		"Canvas width override":                        "キャンバス幅の上書き",
		"Canvas height override":                       "キャンバス高さの上書き",
		"Output directory":                             "出力ディレクトリ",
		"Comma-separated color names (default: whole palette)": "カンマ区切りの色名（省略時はパレット全体）",
		"Comma-separated avatar sizes":                 "カンマ区切りのアバターサイズ",
		"Number of parallel workers (0 = CPU count)":   "並列ワーカー数（0はCPU数）",

		// Messages
		"shadow:":                                  "シャドウ:",
		"Warning: %s":                              "警告: %s",
		"Output exceeds the byte budget: %d bytes": "出力がバイト上限を超えています: %dバイト",
		"Output saved to %s":                       "出力を%sに保存しました",
		"Request %d failed: %s":                    "リクエスト%dが失敗しました: %s",
		"Generated %d images in %s":                "%d枚の画像を%sに生成しました",
		"Failed to write report: %s":               "レポートの書き込みに失敗しました: %s",
		"Interrupted, shutting down...":            "中断されました。終了しています...",
	})
}
