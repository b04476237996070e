package domain

import "errors"

var (
	// ErrValidation は必須入力が欠けていることを示します。ネットワーク呼び出しは行われません。
	ErrValidation = errors.New("validation error")
	// ErrGeneration は画像サービスが失敗したか、画像を返さなかったことを示します。
	ErrGeneration = errors.New("image generation failed")
	// ErrIncompleteRun は表紙と 5 ページが揃っていない状態で PDF を作ろうとしたことを示します。
	ErrIncompleteRun = errors.New("run is incomplete")
	// ErrAssemblerUnavailable は PDF レンダラーが利用できないことを示します。
	ErrAssemblerUnavailable = errors.New("document assembler is unavailable")
	// ErrRunInProgress は実行中に新しい実行を開始しようとしたことを示します。
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrInvalidTransition は現在の状態では受け付けられないイベントであることを示します。
	ErrInvalidTransition = errors.New("invalid run state transition")
	// ErrSessionNotFound はチャットセッションが存在しないか期限切れであることを示します。
	ErrSessionNotFound = errors.New("chat session not found")
)

// ユーザーに表示する固定メッセージ
const (
	MsgValidation       = "Please provide both a theme and a name!"
	MsgGenerationFailed = "Oh no! Something went wrong while creating the images. Please try again."
	MsgIncompleteRun    = "Cannot download PDF. Not all images have been generated."
	MsgAssemblerMissing = "Could not create PDF. The PDF library is not available."
	MsgRunInProgress    = "Your coloring book is still being created. Please wait!"
	MsgPDFFailed        = "Could not create PDF. Please try again."
	MsgBadRequest       = "Sorry, that request could not be understood."
)
