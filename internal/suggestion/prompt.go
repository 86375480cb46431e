// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package suggestion

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/bookmatch/pkg/types"
)

// recommendationPromptTmpl asks for exactly one book answered as five
// labeled lines. Parse depends on these labels.
var recommendationPromptTmpl = template.Must(template.New("recommendation").Parse(`Sen bir kitap öneri asistanısın. Bir okurun tercihleri aşağıda:

- Tür: {{.Genre}}
- Beklenti: {{.Expectation}}
- Okuma süresi: {{.ReadingTime}}
- Odaklanma: {{if .CanFocus}}Uzun ve yoğun metinlere odaklanabiliyor.{{else}}Uzun süre odaklanmakta zorlanıyor, akıcı ve kolay okunan kitapları tercih ediyor.{{end}}

Bu tercihlere en uygun, gerçekten yayımlanmış tek bir kitap öner.
Yanıtını yalnızca aşağıdaki beş satır olarak ver, başka hiçbir metin ekleme:

Başlık: <kitabın adı>
Yazar: <yazarın adı>
Tür: <kitabın türü>
Açıklama: <bu kitabı neden önerdiğini anlatan iki üç cümle>
Zorluk: <Kolay, Orta veya Zor>
{{- if .Retry}}

Önerdiğin kitap kataloğumuzda bulunamadı. Lütfen öncekinden farklı bir kitap öner.
{{- end}}
`))

type promptData struct {
	types.PreferenceRequest
	Retry bool
}

// BuildPrompt renders the first-attempt prompt for req. The same request
// always renders the same prompt.
func BuildPrompt(req types.PreferenceRequest) (string, error) {
	return render(promptData{PreferenceRequest: req})
}

// BuildRetryPrompt renders the prompt used after the first suggestion
// found no catalog match. It adds an instruction to suggest a different book.
func BuildRetryPrompt(req types.PreferenceRequest) (string, error) {
	return render(promptData{PreferenceRequest: req, Retry: true})
}

func render(data promptData) (string, error) {
	var buf bytes.Buffer
	if err := recommendationPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
