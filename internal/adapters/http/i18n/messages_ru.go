package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Russian

	message.SetString(lang, "app.title", "Семейный список желаний")

	message.SetString(lang, "nav.home", "Семья")
	message.SetString(lang, "nav.my_list", "Мой список")
	message.SetString(lang, "nav.comments", "Комментарии")
	message.SetString(lang, "nav.admin", "Админ")
	message.SetString(lang, "nav.switch", "Сменить человека")

	message.SetString(lang, "identity.heading", "Кто ты?")
	message.SetString(lang, "identity.hint", "Выбери своё имя. Родители могут отметить и детей, за которых пишут.")
	message.SetString(lang, "identity.submit", "Продолжить")
	message.SetString(lang, "identity.error_none", "Выбери хотя бы одно имя.")

	message.SetString(lang, "home.heading", "Члены семьи")
	message.SetString(lang, "home.name", "Имя")
	message.SetString(lang, "home.team", "Команда")
	message.SetString(lang, "home.wishes", "Желания")
	message.SetString(lang, "home.view", "Открыть список")
	message.SetString(lang, "home.deadline", "Желания можно добавлять до %s.")
	message.SetString(lang, "home.locked", "Срок добавления желаний прошёл. Списки закрыты.")
	message.SetString(lang, "home.draw_done", "Жеребьёвка проведена. Посмотри на своей странице, кому даришь ты.")
	message.SetString(lang, "home.empty", "Пока нет членов семьи. Попроси админа их добавить.")

	message.SetString(lang, "wishlist.own_heading", "Список желаний: %s")
	message.SetString(lang, "wishlist.receiver_heading", "%s, ты даришь: %s")
	message.SetString(lang, "wishlist.hidden_note", "%s смотрит на этот экран, так что сюрприз остаётся скрытым.")
	message.SetString(lang, "wishlist.add_heading", "Добавить желание")
	message.SetString(lang, "wishlist.text_label", "Что ты хочешь?")
	message.SetString(lang, "wishlist.link_label", "Ссылка на товар (необязательно)")
	message.SetString(lang, "wishlist.add_button", "Добавить")
	message.SetString(lang, "wishlist.delete", "Удалить")
	message.SetString(lang, "wishlist.reserve", "Я подарю это")
	message.SetString(lang, "wishlist.release", "Передумал")
	message.SetString(lang, "wishlist.reserved", "Это уже кто-то берёт")
	message.SetString(lang, "wishlist.reserved_by_me", "Это берёшь ты")
	message.SetString(lang, "wishlist.empty", "Желаний пока нет.")
	message.SetString(lang, "wishlist.locked", "Срок прошёл, новые желания закрыты.")
	message.SetString(lang, "wishlist.no_draw", "Жеребьёвка ещё не проводилась.")
	message.SetString(lang, "wishlist.back", "Назад к семье")

	message.SetString(lang, "comments.heading", "Доска комментариев")
	message.SetString(lang, "comments.form_heading", "Оставить комментарий")
	message.SetString(lang, "comments.body_label", "Твой комментарий")
	message.SetString(lang, "comments.markdown_hint", "Markdown работает.")
	message.SetString(lang, "comments.post", "Отправить")
	message.SetString(lang, "comments.empty", "Комментариев пока нет. Начни разговор.")
	message.SetString(lang, "comments.delete", "Удалить")

	message.SetString(lang, "pagination.prev", "Назад")
	message.SetString(lang, "pagination.next", "Вперёд")

	message.SetString(lang, "admin.login_heading", "Вход для админа")
	message.SetString(lang, "admin.email", "Эл. почта")
	message.SetString(lang, "admin.password", "Пароль")
	message.SetString(lang, "admin.sign_in", "Войти")
	message.SetString(lang, "admin.heading", "Админ")
	message.SetString(lang, "admin.members_heading", "Участники")
	message.SetString(lang, "admin.add_heading", "Добавить участника")
	message.SetString(lang, "admin.name", "Имя")
	message.SetString(lang, "admin.team", "Команда")
	message.SetString(lang, "admin.email_label", "Эл. почта")
	message.SetString(lang, "admin.add", "Добавить")
	message.SetString(lang, "admin.save", "Сохранить")
	message.SetString(lang, "admin.remove", "Удалить")
	message.SetString(lang, "admin.deadline_heading", "Срок желаний")
	message.SetString(lang, "admin.deadline_hint", "Желания можно добавлять до этого дня включительно.")
	message.SetString(lang, "admin.save_deadline", "Сохранить срок")
	message.SetString(lang, "admin.clear_deadline", "Сбросить")
	message.SetString(lang, "admin.draw_heading", "Жеребьёвка")
	message.SetString(lang, "admin.run_draw", "Провести жеребьёвку")
	message.SetString(lang, "admin.notify_label", "Отправить всем письмо со ссылкой на их страницу")
	message.SetString(lang, "admin.no_draw", "Жеребьёвки ещё не было.")
	message.SetString(lang, "admin.draw_partial", "Состав изменился после жеребьёвки. Проведи её заново, чтобы охватить всех.")
	message.SetString(lang, "admin.drawn_at", "Проведена %s")
	message.SetString(lang, "admin.gives_to", "дарит")
	message.SetString(lang, "admin.outbox_heading", "Очередь писем")
	message.SetString(lang, "admin.queued", "%d в очереди")
	message.SetString(lang, "admin.view_outbox", "Открыть очередь")
	message.SetString(lang, "admin.board_count", "%d комментариев")
	message.SetString(lang, "admin.sign_out", "Выйти")

	message.SetString(lang, "outbox.heading", "Очередь писем")
	message.SetString(lang, "outbox.failed_heading", "Требуют внимания")
	message.SetString(lang, "outbox.recent_heading", "Последние отправки")
	message.SetString(lang, "outbox.recipient", "Получатель")
	message.SetString(lang, "outbox.subject", "Тема")
	message.SetString(lang, "outbox.status", "Статус")
	message.SetString(lang, "outbox.attempts", "Попыток")
	message.SetString(lang, "outbox.next_retry", "Следующая попытка")
	message.SetString(lang, "outbox.error", "Ошибка")
	message.SetString(lang, "outbox.retry", "Повторить")
	message.SetString(lang, "outbox.abandon", "Отказаться")
	message.SetString(lang, "outbox.delete", "Удалить")
	message.SetString(lang, "outbox.empty", "Очередь пуста.")
	message.SetString(lang, "outbox.back", "Назад в админку")

	message.SetString(lang, "flash.identity_saved", "Добро пожаловать!")
	message.SetString(lang, "flash.identity_gone", "Этого имени больше нет в списке. Выберите себя заново.")
	message.SetString(lang, "flash.wish_added", "Желание добавлено.")
	message.SetString(lang, "flash.wish_added_for", "Желание добавлено в список: %s.")
	message.SetString(lang, "flash.wish_deleted", "Желание удалено.")
	message.SetString(lang, "flash.wish_reserved", "Забронировано. Дарить тебе.")
	message.SetString(lang, "flash.wish_released", "Бронь снята.")
	message.SetString(lang, "flash.comment_posted", "Комментарий отправлен.")
	message.SetString(lang, "flash.comment_deleted", "Комментарий удалён.")
	message.SetString(lang, "flash.member_added", "%s теперь в списке.")
	message.SetString(lang, "flash.member_updated", "%s: данные обновлены.")
	message.SetString(lang, "flash.member_removed", "%s: больше не в списке.")
	message.SetString(lang, "flash.deadline_set", "Срок сохранён.")
	message.SetString(lang, "flash.deadline_cleared", "Срок сброшен.")
	message.SetString(lang, "flash.draw_done", "Жеребьёвка проведена. Письма уже в пути.")
	message.SetString(lang, "flash.draw_failed", "С такими командами пары не сложились. Измени команды и попробуй снова.")
	message.SetString(lang, "flash.draw_too_few", "Для жеребьёвки нужно хотя бы два участника.")
	message.SetString(lang, "flash.wishes_locked", "Срок добавления желаний прошёл.")
	message.SetString(lang, "flash.login_failed", "Неверная почта или пароль.")
	message.SetString(lang, "flash.login_locked", "Слишком много попыток. Попробуй через несколько минут.")
	message.SetString(lang, "flash.signed_out", "Выход выполнен.")
	message.SetString(lang, "flash.outbox_retry", "Письмо снова в очереди.")
	message.SetString(lang, "flash.outbox_abandoned", "Письмо отменено.")
	message.SetString(lang, "flash.member_duplicate", "Такое имя уже есть в списке.")
	message.SetString(lang, "flash.member_invalid", "Проверь имя и почту участника.")
	message.SetString(lang, "flash.wish_invalid", "Желание не сохранилось. Проверь текст и ссылку.")
	message.SetString(lang, "flash.comment_invalid", "Комментарий не отправился.")
	message.SetString(lang, "flash.deadline_invalid", "Это не похоже на дату.")
	message.SetString(lang, "flash.outbox_deleted", "Запись удалена из журнала.")
}
