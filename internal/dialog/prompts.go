package dialog

// User-facing message texts. The bot speaks Brazilian Portuguese.
const (
	msgWelcome = "👋 Bem-vindo ao seu Assistente de Calendário!\n\n" +
		"Para começar, precisamos conectar seu Google Calendar.\n\n" +
		"Use /conectar para iniciar a conexão."

	msgWelcomeConnected = "🤖 Olá! Eu sou seu assistente de calendário.\n\n" +
		"Você já está conectado ao Google Calendar. 🎉\n\n" +
		"Você pode pedir para:\n" +
		"• Agendar eventos: 'Agendar reunião amanhã às 10h'\n" +
		"• Consultar agenda: 'O que tenho hoje?'\n" +
		"• Modificar eventos: 'Aumentar duração da reunião para 2 horas'\n\n" +
		"Use /ajuda para ver mais detalhes."

	msgHelp = "🤖 Assistente de Calendário - Comandos\n\n" +
		"📆 Criar eventos\n" +
		"• 'Agendar reunião com equipe amanhã às 14h'\n" +
		"• 'Marcar call com cliente na quinta às 10h30'\n" +
		"• 'Criar evento de planejamento dia 15/04 às 9h com duração de 2 horas'\n\n" +
		"👀 Consultar agenda\n" +
		"• 'O que tenho hoje?'\n" +
		"• 'Mostrar minha agenda de amanhã'\n" +
		"• 'Ver compromissos da próxima semana'\n\n" +
		"✏️ Modificar eventos\n" +
		"• 'Estender duração da reunião para 2 horas'\n\n" +
		"❌ Cancelar eventos\n" +
		"• 'Cancelar reunião de amanhã'\n" +
		"• 'Remover evento de planejamento'\n\n" +
		"⚙️ Configuração\n" +
		"• /start - Iniciar o bot\n" +
		"• /conectar - Conectar ao Google Calendar\n" +
		"• /email - Definir e-mail para confirmações\n" +
		"• /fuso - Definir seu fuso horário\n" +
		"• /resetar - Cancelar a operação atual\n" +
		"• /ajuda - Ver esta ajuda"

	msgNotConnected = "Você ainda não está conectado ao Google Calendar. Use /conectar para configurar."

	msgNotUnderstood = "Desculpe, não entendi o que você quer fazer. Você pode:\n" +
		"• Agendar eventos: 'Agendar reunião amanhã às 10h'\n" +
		"• Consultar agenda: 'O que tenho hoje?'\n" +
		"• Cancelar eventos: 'Cancelar reunião de amanhã'\n\n" +
		"Use /ajuda para mais exemplos."

	msgAskDate        = "Em qual data?"
	msgAskTime        = "Em qual horário?"
	msgAskDuration    = "Qual deve ser a duração?"
	msgAskNewDuration = "Qual deve ser a nova duração do evento?"
	msgAskAddMeet     = "Deseja adicionar um link do Google Meet para esta reunião?"
	msgAskAttendees   = "Quem serão os participantes da reunião?\n\n" +
		"Digite os e-mails separados por vírgula ou nomes dos participantes."
	msgAskEventRefUpdate = "Qual evento você deseja modificar?"
	msgAskEventRefDelete = "Qual evento você deseja excluir?"

	msgBadDate       = "Não consegui entender a data. Por favor, tente novamente com formatos como 'amanhã', 'sexta-feira' ou '15/04'."
	msgBadTime       = "Não consegui entender o horário. Por favor, tente novamente com formatos como '14h', '14:30' ou '2 da tarde'."
	msgBadDuration   = "Não consegui entender a duração. Por favor, tente novamente com formatos como '1 hora', '90 minutos' ou '1,5 horas'."
	msgBadAttendees  = "Não consegui identificar os participantes. Por favor, tente novamente com e-mails ou nomes separados por vírgula."
	msgNoEventsFound = "Não encontrei eventos correspondentes à sua descrição. Por favor, tente novamente com mais detalhes."

	msgAuthCodePrompt = "Após autorizar, copie o código exibido no navegador e cole aqui."
	msgAuthSuccess    = "🎉 Conectado ao Google Calendar com sucesso!\n\n" +
		"Seu assistente de calendário está pronto para uso!\n\n" +
		"Você pode me pedir para:\n" +
		"• Agendar eventos: 'Agendar reunião amanhã às 10h'\n" +
		"• Consultar agenda: 'O que tenho hoje?'\n\n" +
		"Use /ajuda para ver mais exemplos."
	msgAuthFailed = "❌ Não consegui validar o código de autorização. Por favor, tente novamente ou use /conectar para gerar um novo link."

	msgPendingExpired = "⏳ A operação anterior expirou por inatividade. Vamos começar de novo.\n\n"
	msgStateReset     = "Desculpe, houve um problema ao recuperar nossa conversa. Vamos recomeçar.\n\n"
	msgReset          = "Tudo certo, a operação atual foi cancelada."
	msgNothingToReset = "Não há nenhuma operação em andamento."
	msgCancelled      = "Operação cancelada."
	msgCallbackError  = "Ocorreu um erro ao processar sua solicitação. Por favor, tente novamente."

	msgDeleteSuccess = "✅ Evento excluído com sucesso!"

	msgUpdateOnlyDuration = "Por enquanto consigo alterar apenas a duração de eventos.\n\n" +
		"Qual deve ser a nova duração do evento?"

	msgChooseCandidate = "Responda com o número do evento ou com o título dele."

	msgEmailUsage   = "Envie /email seguido do endereço, por exemplo:\n/email voce@exemplo.com"
	msgEmailInvalid = "Esse endereço de e-mail não parece válido. Tente novamente, por exemplo: /email voce@exemplo.com"

	msgFusoUsage   = "Envie /fuso seguido do nome do fuso horário, por exemplo:\n/fuso America/Sao_Paulo"
	msgFusoInvalid = "Esse fuso horário não parece válido. Use um nome como America/Sao_Paulo ou Europe/Lisbon."
)

// Button labels and callback data for the two confirmation keyboards.
const (
	btnYes       = "✅ Sim"
	btnNo        = "❌ Não"
	btnDeleteYes = "✅ Sim, excluir"
	btnDeleteNo  = "❌ Não, cancelar"

	callbackMeetYes   = "meet_yes"
	callbackMeetNo    = "meet_no"
	callbackDeleteYes = "delete_yes"
	callbackDeleteNo  = "delete_no"
)
