package requests

type (
	// сообщение в канал или ответ на взаимодействие
	Message struct {
		Content  string
		Mentions Mentions
		Embed    *Embed
		Buttons  []Button
	}

	// кого разрешено упомянуть в сообщении
	Mentions struct {
		Users []string
		Roles []string
	}

	Embed struct {
		Title       string
		Description string
		Color       int
		Fields      []Field
		Footer      string
	}

	Field struct {
		Name   string
		Value  string
		Inline bool
	}

	Button struct {
		CustomID string
		Label    string
		Emoji    string
		Style    ButtonStyle
	}

	// ссылка на взаимодействие, достаточная для ответа на него
	InteractionRef struct {
		ID    string
		AppID string
		Token string
	}
)

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonDanger
)

type Visibility int

const (
	// видно только пользователю, вызвавшему взаимодействие
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}
