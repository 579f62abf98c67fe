// Package locale holds the static language configuration for the
// description pipeline: the per-language vision prompt, the speech
// locale passed to the synthesis engine, and the permitted voice set.
// All tables are read-only after init.
package locale

import (
	"sort"
	"strings"
)

const (
	// Default is the language assumed when a request omits one.
	Default = "en"

	// GlobalDefaultVoice is the voice assumed when a request omits one.
	// Requests that carry it together with a non-English language get
	// the language's own default voice instead.
	GlobalDefaultVoice = "Joanna"
)

// Language is the resolved configuration for one supported language.
type Language struct {
	Code         string
	Prompt       string
	SpeechLocale string
	DefaultVoice string
	Voices       []string
}

// PermitsVoice reports whether voice may be used with this language.
func (l Language) PermitsVoice(voice string) bool {
	for _, v := range l.Voices {
		if v == voice {
			return true
		}
	}
	return false
}

// Resolve looks up a language by its ISO 639-1 code, case-insensitively.
func Resolve(code string) (Language, bool) {
	l, ok := languages[strings.ToLower(code)]
	return l, ok
}

// Supported returns the supported language codes in sorted order.
func Supported() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// All returns every supported language keyed by code. The map is a
// copy; callers may not mutate the underlying configuration.
func All() map[string]Language {
	out := make(map[string]Language, len(languages))
	for code, l := range languages {
		out[code] = l
	}
	return out
}

var languages = map[string]Language{
	"en": {
		Code:         "en",
		Prompt:       "Please describe what you see in this image in detail.",
		SpeechLocale: "en-US",
		DefaultVoice: "Joanna",
		Voices:       []string{"Joanna", "Matthew", "Ivy", "Kendra", "Kimberly", "Salli", "Joey", "Justin", "Kevin", "Ruth", "Amy", "Brian", "Emma", "Olivia", "Aria"},
	},
	"es": {
		Code:         "es",
		Prompt:       "Por favor describe lo que ves en esta imagen en detalle.",
		SpeechLocale: "es-ES",
		DefaultVoice: "Lucia",
		Voices:       []string{"Lucia", "Conchita", "Enrique", "Miguel", "Penelope", "Lupe", "Mia"},
	},
	"ja": {
		Code:         "ja",
		Prompt:       "この画像に写っているものを詳しく説明してください。",
		SpeechLocale: "ja-JP",
		DefaultVoice: "Mizuki",
		Voices:       []string{"Mizuki", "Takumi"},
	},
	"fr": {
		Code:         "fr",
		Prompt:       "Veuillez décrire ce que vous voyez dans cette image en détail.",
		SpeechLocale: "fr-FR",
		DefaultVoice: "Celine",
		Voices:       []string{"Celine", "Lea", "Mathieu"},
	},
	"de": {
		Code:         "de",
		Prompt:       "Bitte beschreiben Sie detailliert, was Sie in diesem Bild sehen.",
		SpeechLocale: "de-DE",
		DefaultVoice: "Marlene",
		Voices:       []string{"Marlene", "Vicki", "Hans"},
	},
	"it": {
		Code:         "it",
		Prompt:       "Per favore descrivi in dettaglio quello che vedi in questa immagine.",
		SpeechLocale: "it-IT",
		DefaultVoice: "Carla",
		Voices:       []string{"Carla", "Bianca", "Giorgio"},
	},
	"pt": {
		Code:         "pt",
		Prompt:       "Por favor, descreva o que você vê nesta imagem em detalhes.",
		SpeechLocale: "pt-BR",
		DefaultVoice: "Camila",
		Voices:       []string{"Camila", "Vitoria", "Ricardo"},
	},
	"ru": {
		Code:         "ru",
		Prompt:       "Пожалуйста, подробно опишите то, что вы видите на этом изображении.",
		SpeechLocale: "ru-RU",
		DefaultVoice: "Tatyana",
		Voices:       []string{"Tatyana", "Maxim"},
	},
	"ko": {
		Code:         "ko",
		Prompt:       "이 이미지에서 보이는 것을 자세히 설명해 주세요.",
		SpeechLocale: "ko-KR",
		DefaultVoice: "Seoyeon",
		Voices:       []string{"Seoyeon"},
	},
	"zh": {
		Code:         "zh",
		Prompt:       "请详细描述您在这张图片中看到的内容。",
		SpeechLocale: "cmn-CN",
		DefaultVoice: "Zhiyu",
		Voices:       []string{"Zhiyu"},
	},
	"ar": {
		Code:         "ar",
		Prompt:       "يرجى وصف ما تراه في هذه الصورة بالتفصيل.",
		SpeechLocale: "ar-AE",
		DefaultVoice: "Zeina",
		Voices:       []string{"Zeina"},
	},
	"hi": {
		Code:         "hi",
		Prompt:       "कृपया इस छवि में आप जो देख रहे हैं उसका विस्तार से वर्णन करें।",
		SpeechLocale: "hi-IN",
		DefaultVoice: "Aditi",
		Voices:       []string{"Aditi", "Raveena"},
	},
	"tr": {
		Code:         "tr",
		Prompt:       "Lütfen bu resimde gördüklerinizi ayrıntılı olarak açıklayın.",
		SpeechLocale: "tr-TR",
		DefaultVoice: "Filiz",
		Voices:       []string{"Filiz"},
	},
	"pl": {
		Code:         "pl",
		Prompt:       "Proszę szczegółowo opisać to, co widzisz na tym obrazie.",
		SpeechLocale: "pl-PL",
		DefaultVoice: "Ewa",
		Voices:       []string{"Ewa", "Maja", "Jacek", "Jan"},
	},
	"nl": {
		Code:         "nl",
		Prompt:       "Beschrijf alstublieft in detail wat u in deze afbeelding ziet.",
		SpeechLocale: "nl-NL",
		DefaultVoice: "Lotte",
		Voices:       []string{"Lotte", "Ruben"},
	},
	"sv": {
		Code:         "sv",
		Prompt:       "Vänligen beskriv i detalj vad du ser i denna bild.",
		SpeechLocale: "sv-SE",
		DefaultVoice: "Astrid",
		Voices:       []string{"Astrid"},
	},
	"da": {
		Code:         "da",
		Prompt:       "Beskriv venligst i detaljer, hvad du ser i dette billede.",
		SpeechLocale: "da-DK",
		DefaultVoice: "Naja",
		Voices:       []string{"Naja", "Mads"},
	},
	"no": {
		Code:         "no",
		Prompt:       "Vennligst beskriv i detalj hva du ser i dette bildet.",
		SpeechLocale: "nb-NO",
		DefaultVoice: "Liv",
		Voices:       []string{"Liv"},
	},
	"fi": {
		Code:         "fi",
		Prompt:       "Kuvaile yksityiskohtaisesti, mitä näet tässä kuvassa.",
		SpeechLocale: "fi-FI",
		DefaultVoice: "Suvi",
		Voices:       []string{"Suvi"},
	},
	"is": {
		Code:         "is",
		Prompt:       "Vinsamlegast lýstu því sem þú sérð á þessari mynd í smáatriðum.",
		SpeechLocale: "is-IS",
		DefaultVoice: "Dora",
		Voices:       []string{"Dora", "Karl"},
	},
}
