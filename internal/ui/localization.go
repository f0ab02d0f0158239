package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyEnterURL           = "enter_url"
	KeyURLPlaceholder     = "url_placeholder"
	KeyDownloadType       = "download_type"
	KeySingleVideo        = "single_video"
	KeyPlaylist           = "playlist"
	KeyChooseFolder       = "choose_folder"
	KeyFolder             = "folder"
	KeySelectFormat       = "select_format"
	KeyProgressNotStarted = "progress_not_started"
	KeyStartDownload      = "start_download"
	KeyCancel             = "cancel"
	KeyPreparing          = "preparing"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyDownloadDirectory  = "download_directory"
	KeyProbeCache         = "probe_cache"
	KeyTagAudio           = "tag_audio"
	KeyAutoReveal         = "auto_reveal"
	KeySave               = "save"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyInvalidURL         = "invalid_url"
	KeyPleaseEnterURL     = "please_enter_url"
	KeySuccess            = "success"
	KeyError              = "error"
	KeyCancelled          = "cancelled"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "YouTube Video Downloader",
		KeyEnterURL:           "Enter YouTube URL:",
		KeyURLPlaceholder:     "https://www.youtube.com/watch?v=...",
		KeyDownloadType:       "Download type:",
		KeySingleVideo:        "Single Video",
		KeyPlaylist:           "Playlist",
		KeyChooseFolder:       "Choose Download Folder",
		KeyFolder:             "Folder",
		KeySelectFormat:       "Select format:",
		KeyProgressNotStarted: "Progress: Not started",
		KeyStartDownload:      "Start Download",
		KeyCancel:             "Cancel",
		KeyPreparing:          "Preparing download...",
		KeySettings:           "Settings",
		KeyLanguage:           "Language",
		KeyDownloadDirectory:  "Download Directory",
		KeyProbeCache:         "Cache playlist lookups",
		KeyTagAudio:           "Tag MP3 files",
		KeyAutoReveal:         "Open folder when done",
		KeySave:               "Save",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyInvalidURL:         "Invalid URL",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeySuccess:            "Success",
		KeyError:              "Error",
		KeyCancelled:          "Download cancelled",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Загрузчик видео YouTube",
		KeyEnterURL:           "Введите URL YouTube:",
		KeyDownloadType:       "Тип загрузки:",
		KeySingleVideo:        "Одно видео",
		KeyPlaylist:           "Плейлист",
		KeyChooseFolder:       "Выбрать папку",
		KeyFolder:             "Папка",
		KeySelectFormat:       "Формат:",
		KeyProgressNotStarted: "Прогресс: не начато",
		KeyStartDownload:      "Начать загрузку",
		KeyCancel:             "Отмена",
		KeyPreparing:          "Подготовка загрузки...",
		KeySettings:           "Настройки",
		KeyLanguage:           "Язык",
		KeyDownloadDirectory:  "Папка загрузки",
		KeyProbeCache:         "Кэшировать плейлисты",
		KeyTagAudio:           "Теги для MP3",
		KeyAutoReveal:         "Открыть папку по завершении",
		KeySave:               "Сохранить",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки сохранены!",
		KeyInvalidURL:         "Неверный URL",
		KeyPleaseEnterURL:     "Введите URL",
		KeySuccess:            "Готово",
		KeyError:              "Ошибка",
		KeyCancelled:          "Загрузка отменена",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Baixador de Vídeos do YouTube",
		KeyEnterURL:           "Digite a URL do YouTube:",
		KeyDownloadType:       "Tipo de download:",
		KeySingleVideo:        "Vídeo único",
		KeyPlaylist:           "Playlist",
		KeyChooseFolder:       "Escolher pasta",
		KeyFolder:             "Pasta",
		KeySelectFormat:       "Formato:",
		KeyProgressNotStarted: "Progresso: não iniciado",
		KeyStartDownload:      "Iniciar download",
		KeyCancel:             "Cancelar",
		KeyPreparing:          "Preparando download...",
		KeySettings:           "Configurações",
		KeyLanguage:           "Idioma",
		KeyDownloadDirectory:  "Pasta de download",
		KeyProbeCache:         "Guardar playlists em cache",
		KeyTagAudio:           "Marcar arquivos MP3",
		KeyAutoReveal:         "Abrir pasta ao concluir",
		KeySave:               "Salvar",
		KeyBrowse:             "Procurar",
		KeySettingsSaved:      "Configurações salvas!",
		KeyInvalidURL:         "URL inválida",
		KeyPleaseEnterURL:     "Digite uma URL",
		KeySuccess:            "Sucesso",
		KeyError:              "Erro",
		KeyCancelled:          "Download cancelado",
	}
}
