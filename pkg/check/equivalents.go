package check

// equivalents maps anglicisms absent from the normative dictionaries to the
// Russian substitutes recommended in the report. Substitution is a plain
// lookup in this table, not a ranking.
var equivalents = map[string]string{
	"креатив":      "творчество",
	"креативный":   "творческий",
	"креативность": "творчество",
	"креативити":   "творчество",
	"платформа":    "площадка, сервис",
	"ментор":       "наставник",
	"менторы":      "наставники",
	"индустрия":    "отрасль, сфера",
	"лайв":         "прямой эфир",
	"лайвы":        "прямые эфиры",
	"трек":         "направление, траектория",
	"треки":        "направления",
	"скилл":        "навык, умение",
	"скиллы":       "навыки",
	"контент":      "материалы, содержимое",
	"геймдев":      "разработка игр",
	"фэшн":         "мода",
	"faq":          "Вопросы и ответы",
	"триал":        "пробный период",
	"подписка":     "абонемент",
	"дизайн":       "оформление, проектирование",
	"маркетинг":    "сбыт, продвижение",
	"колледж":      "среднее специальное учебное заведение",
	"моушн":        "движение, анимация",
	"майндсет":     "установка, образ мыслей",
	"дедлайн":      "срок",
	"фриланс":      "удалённая работа",
	"консалтинг":   "консультирование",
	"менеджмент":   "управление",
	"менеджер":     "руководитель, управляющий",
	"бренд":        "торговая марка",
	"буллинг":      "травля",
	"хайлайт":      "основное, главное",
	"хайлайты":     "основное, главное",
	"комьюнити":    "сообщество",
	"воркшоп":      "мастер-класс",
	"онбординг":    "введение в должность",
	"апдейт":       "обновление",
	"дайджест":     "обзор",
	"драйв":        "энергия, азарт",
	"инсайт":       "понимание, прозрение",
	"лайфхак":      "полезный совет",
	"логин":        "имя пользователя",
	"лук":          "образ, внешний вид",
	"мерч":         "фирменная продукция",
	"селфи":        "фотография себя",
	"скролл":       "прокрутка",
	"спойлер":      "раскрытие сюжета",
	"сторис":       "история (в соцсетях)",
	"чек-лист":     "список проверки",
	"шоурум":       "выставочный зал",
}

// knownAttested covers words verified by hand against the dictionaries, used
// when the service runs without a built index (fresh deployment, no corpus
// volume). They answer as attested with a source but no page.
var knownAttested = map[string]string{
	"ментор":  "Орфоэпический словарь (ИРЯ РАН)",
	"менторы": "Орфоэпический словарь (ИРЯ РАН)",
}
