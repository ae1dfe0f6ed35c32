package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Estonian

	message.SetString(lang, "app.title", "Pere soovinimekiri")

	message.SetString(lang, "nav.home", "Pere")
	message.SetString(lang, "nav.my_list", "Minu nimekiri")
	message.SetString(lang, "nav.comments", "Kommentaarid")
	message.SetString(lang, "nav.admin", "Admin")
	message.SetString(lang, "nav.switch", "Vaheta inimest")

	message.SetString(lang, "identity.heading", "Kes sa oled?")
	message.SetString(lang, "identity.hint", "Vali enda nimi. Vanemad võivad valida ka lapsed, kelle eest nad kirjutavad.")
	message.SetString(lang, "identity.submit", "Jätka")
	message.SetString(lang, "identity.error_none", "Vali vähemalt üks nimi.")

	message.SetString(lang, "home.heading", "Pereliikmed")
	message.SetString(lang, "home.name", "Nimi")
	message.SetString(lang, "home.team", "Tiim")
	message.SetString(lang, "home.wishes", "Soovid")
	message.SetString(lang, "home.view", "Vaata nimekirja")
	message.SetString(lang, "home.deadline", "Soove saab lisada kuni %s.")
	message.SetString(lang, "home.locked", "Soovide tähtaeg on möödas. Nimekirjad on lukus.")
	message.SetString(lang, "home.draw_done", "Loos on tõmmatud. Vaata oma lehelt, kellele sina kingid.")
	message.SetString(lang, "home.empty", "Pereliikmeid pole veel. Palu adminil mõned lisada.")

	message.SetString(lang, "wishlist.own_heading", "Soovinimekiri: %s")
	message.SetString(lang, "wishlist.receiver_heading", "%s, sina kingid: %s")
	message.SetString(lang, "wishlist.hidden_note", "%s vaatab seda ekraani, seega jääb tema üllatus peitu.")
	message.SetString(lang, "wishlist.add_heading", "Lisa soov")
	message.SetString(lang, "wishlist.text_label", "Mida sa soovid?")
	message.SetString(lang, "wishlist.link_label", "Toote link (valikuline)")
	message.SetString(lang, "wishlist.add_button", "Lisa soov")
	message.SetString(lang, "wishlist.delete", "Kustuta")
	message.SetString(lang, "wishlist.reserve", "Mina toon selle")
	message.SetString(lang, "wishlist.release", "Siiski mitte")
	message.SetString(lang, "wishlist.reserved", "Keegi juba toob selle")
	message.SetString(lang, "wishlist.reserved_by_me", "Sina tood selle")
	message.SetString(lang, "wishlist.empty", "Soove pole veel.")
	message.SetString(lang, "wishlist.locked", "Tähtaeg on möödas, uusi soove ei saa lisada.")
	message.SetString(lang, "wishlist.no_draw", "Loosi pole veel tõmmatud.")
	message.SetString(lang, "wishlist.back", "Tagasi pere juurde")

	message.SetString(lang, "comments.heading", "Kommentaarid")
	message.SetString(lang, "comments.form_heading", "Jäta kommentaar")
	message.SetString(lang, "comments.body_label", "Sinu kommentaar")
	message.SetString(lang, "comments.markdown_hint", "Markdown töötab.")
	message.SetString(lang, "comments.post", "Postita")
	message.SetString(lang, "comments.empty", "Kommentaare pole veel. Alusta vestlust.")
	message.SetString(lang, "comments.delete", "Kustuta")

	message.SetString(lang, "pagination.prev", "Eelmine")
	message.SetString(lang, "pagination.next", "Järgmine")

	message.SetString(lang, "admin.login_heading", "Admini sisselogimine")
	message.SetString(lang, "admin.email", "E-post")
	message.SetString(lang, "admin.password", "Parool")
	message.SetString(lang, "admin.sign_in", "Logi sisse")
	message.SetString(lang, "admin.heading", "Admin")
	message.SetString(lang, "admin.members_heading", "Liikmed")
	message.SetString(lang, "admin.add_heading", "Lisa liige")
	message.SetString(lang, "admin.name", "Nimi")
	message.SetString(lang, "admin.team", "Tiim")
	message.SetString(lang, "admin.email_label", "E-post")
	message.SetString(lang, "admin.add", "Lisa")
	message.SetString(lang, "admin.save", "Salvesta")
	message.SetString(lang, "admin.remove", "Eemalda")
	message.SetString(lang, "admin.deadline_heading", "Soovide tähtaeg")
	message.SetString(lang, "admin.deadline_hint", "Soove saab lisada kuni selle päevani (kaasa arvatud).")
	message.SetString(lang, "admin.save_deadline", "Salvesta tähtaeg")
	message.SetString(lang, "admin.clear_deadline", "Tühista")
	message.SetString(lang, "admin.draw_heading", "Kingiloos")
	message.SetString(lang, "admin.run_draw", "Tõmba loosi")
	message.SetString(lang, "admin.notify_label", "Saada kõigile kiri oma lehe lingiga")
	message.SetString(lang, "admin.no_draw", "Loosi pole veel tõmmatud.")
	message.SetString(lang, "admin.draw_partial", "Nimekiri on pärast loosi muutunud. Tõmba loos uuesti, et kõik oleksid kaetud.")
	message.SetString(lang, "admin.drawn_at", "Loositud %s")
	message.SetString(lang, "admin.gives_to", "kingib")
	message.SetString(lang, "admin.outbox_heading", "E-kirjade järjekord")
	message.SetString(lang, "admin.queued", "%d ootel")
	message.SetString(lang, "admin.view_outbox", "Vaata järjekorda")
	message.SetString(lang, "admin.board_count", "%d kommentaari")
	message.SetString(lang, "admin.sign_out", "Logi välja")

	message.SetString(lang, "outbox.heading", "E-kirjade järjekord")
	message.SetString(lang, "outbox.failed_heading", "Vajab tähelepanu")
	message.SetString(lang, "outbox.recent_heading", "Viimased saatmised")
	message.SetString(lang, "outbox.recipient", "Saaja")
	message.SetString(lang, "outbox.subject", "Teema")
	message.SetString(lang, "outbox.status", "Olek")
	message.SetString(lang, "outbox.attempts", "Katseid")
	message.SetString(lang, "outbox.next_retry", "Järgmine katse")
	message.SetString(lang, "outbox.error", "Viga")
	message.SetString(lang, "outbox.retry", "Proovi uuesti")
	message.SetString(lang, "outbox.abandon", "Loobu")
	message.SetString(lang, "outbox.delete", "Kustuta")
	message.SetString(lang, "outbox.empty", "Järjekord on tühi.")
	message.SetString(lang, "outbox.back", "Tagasi adminisse")

	message.SetString(lang, "flash.identity_saved", "Tere tulemast!")
	message.SetString(lang, "flash.identity_gone", "Seda nime ei ole enam nimekirjas. Vali uuesti, kes sa oled.")
	message.SetString(lang, "flash.wish_added", "Soov lisatud.")
	message.SetString(lang, "flash.wish_added_for", "Soov lisatud nimekirja: %s.")
	message.SetString(lang, "flash.wish_deleted", "Soov eemaldatud.")
	message.SetString(lang, "flash.wish_reserved", "Broneeritud. Sinu tuua.")
	message.SetString(lang, "flash.wish_released", "Broneering vabastatud.")
	message.SetString(lang, "flash.comment_posted", "Kommentaar postitatud.")
	message.SetString(lang, "flash.comment_deleted", "Kommentaar eemaldatud.")
	message.SetString(lang, "flash.member_added", "%s lisatud.")
	message.SetString(lang, "flash.member_updated", "%s uuendatud.")
	message.SetString(lang, "flash.member_removed", "%s eemaldatud.")
	message.SetString(lang, "flash.deadline_set", "Tähtaeg salvestatud.")
	message.SetString(lang, "flash.deadline_cleared", "Tähtaeg tühistatud.")
	message.SetString(lang, "flash.draw_done", "Loos on tõmmatud. Kirjad on teel.")
	message.SetString(lang, "flash.draw_failed", "Nende tiimidega ei leidu sobivat paigutust. Muuda tiime ja proovi uuesti.")
	message.SetString(lang, "flash.draw_too_few", "Loosiks on vaja vähemalt kahte liiget.")
	message.SetString(lang, "flash.wishes_locked", "Soovide tähtaeg on möödas.")
	message.SetString(lang, "flash.login_failed", "Vale e-post või parool.")
	message.SetString(lang, "flash.login_locked", "Liiga palju katseid. Proovi mõne minuti pärast uuesti.")
	message.SetString(lang, "flash.signed_out", "Välja logitud.")
	message.SetString(lang, "flash.outbox_retry", "Kiri pandi uuesti järjekorda.")
	message.SetString(lang, "flash.outbox_abandoned", "Kirjast loobuti.")
	message.SetString(lang, "flash.member_duplicate", "See nimi on juba nimekirjas.")
	message.SetString(lang, "flash.member_invalid", "Kontrolli liikme nime ja e-posti.")
	message.SetString(lang, "flash.wish_invalid", "Soovi ei saanud salvestada. Kontrolli teksti ja linki.")
	message.SetString(lang, "flash.comment_invalid", "Kommentaari ei saanud postitada.")
	message.SetString(lang, "flash.deadline_invalid", "See ei ole sobiv kuupäev.")
	message.SetString(lang, "flash.outbox_deleted", "Kirje eemaldati logist.")
}
