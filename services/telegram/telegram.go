package telegram

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"tweetgram/models/constants"
	"tweetgram/models/entities"
	"tweetgram/repositories/account"
	"tweetgram/repositories/subscriber"
	"tweetgram/services/relay"
	"tweetgram/services/timeline"
	"tweetgram/utils/texts"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	publishTimeout = 10 * time.Minute
	followTimeout  = time.Minute
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

func New(bot *gotgbot.Bot,
	timelineService timeline.Service,
	relayService relay.Service,
	accountLookup AccountLookup,
	captionEditor CaptionEditor,
	subscriberRepo subscriber.Repository,
	accountRepo account.Repository) (*Impl, error) {

	if bot == nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{
		bot: bot,
		send: func(chatID int64, text string) error {
			_, err := bot.SendMessage(chatID, text, nil)
			return err
		},
		authorizedUsers: ParseAuthorizedUsers(viper.GetString(constants.TelegramAuthorizedUsers)),
		timeline:        timelineService,
		relay:           relayService,
		accountLookup:   accountLookup,
		captionEditor:   captionEditor,
		subscriberRepo:  subscriberRepo,
		accountRepo:     accountRepo,
	}
	for name, command := range service.commands() {
		dispatcher.AddHandler(handlers.NewCommand(name, service.wrap(name, command)))
	}
	dispatcher.AddHandler(handlers.NewMessage(isLink, service.wrap("link", service.link)))
	dispatcher.AddHandler(handlers.NewMessage(isCommand, service.wrap("unknown", service.unknown)))

	service.updater = ext.NewUpdater(dispatcher, nil)

	return &service, nil
}

func (service *Impl) commands() map[string]func(request) {
	return map[string]func(request){
		"start":    service.start,
		"stop":     service.stop,
		"help":     service.help,
		"follow":   service.follow,
		"unfollow": service.unfollow,
		"list":     service.list,
		"replies":  service.replies,
		"caption":  service.caption,
	}
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	log.Info().Str(constants.LogUsername, service.bot.User.Username).Msg("Telegram bot listening")
	service.updater.Idle()
	return nil
}

func (service *Impl) Stop() error {
	return service.updater.Stop()
}

func (service *Impl) wrap(cmd string, command func(request)) handlers.Response {
	return func(b *gotgbot.Bot, ctx *ext.Context) error {
		service.serve(cmd, requestOf(ctx), command)
		return nil
	}
}

// serve runs command for authorized senders. Others receive a short hint.
func (service *Impl) serve(cmd string, req request, command func(request)) {
	log.Info().Str(constants.LogCommand, cmd).Str(constants.LogUsername, req.username).Int64(constants.LogChatID, req.chatID).Msg("command received")

	if _, ok := service.authorizedUsers[strings.ToLower(req.username)]; !ok {
		log.Warn().Str(constants.LogCommand, cmd).Int64(constants.LogChatID, req.chatID).Msg("forbidden usage")
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeUnauthorized))
		return
	}

	command(req)
}

func (service *Impl) start(req request) {
	if _, err := service.subscriberRepo.FindOrCreate(req.chatID, req.username); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot save subscriber")
		return
	}

	accounts, err := service.accountRepo.FetchAll(req.chatID)
	if err == nil && len(accounts) == 0 {
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeWelcome))
	} else {
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeResuming))
	}

	if _, errStart := service.timeline.Start(req.chatID); errStart != nil {
		log.Error().Err(errStart).Int64(constants.LogChatID, req.chatID).Msg("Cannot start fetching")
	}
}

func (service *Impl) stop(req request) {
	stopped, err := service.timeline.Stop(req.chatID)
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot stop fetching")
		return
	}
	if stopped {
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeStopped))
	}
}

func (service *Impl) help(req request) {
	service.reply(req.chatID, getMessageFromMessageType(MessageTypeHelp))
}

func (service *Impl) replies(req request) {
	var includeReplies bool
	switch commandArgument(req.text) {
	case "on":
		includeReplies = true
	case "off":
		includeReplies = false
	default:
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeIncorrect))
		return
	}

	if _, err := service.subscriberRepo.FindOrCreate(req.chatID, req.username); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot save subscriber")
		return
	}
	if err := service.subscriberRepo.SetIncludeReplies(req.chatID, includeReplies); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot save replies setting")
		return
	}

	if includeReplies {
		service.reply(req.chatID, "Replies are now included")
	} else {
		service.reply(req.chatID, "Replies are now excluded")
	}
}

func (service *Impl) follow(req request) {
	handle, valid := parseHandle(commandArgument(req.text))
	if !valid {
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeIncorrect))
		return
	}

	if _, err := service.subscriberRepo.FindOrCreate(req.chatID, req.username); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot save subscriber")
		return
	}

	following, err := service.accountRepo.IsFollowing(req.chatID, handle)
	if err == nil && following {
		service.reply(req.chatID, "Already following @"+handle)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), followTimeout)
	defer cancel()
	mostRecent, err := service.accountLookup.FetchMostRecentPostID(ctx, handle)
	if err != nil {
		log.Warn().Err(err).Str(constants.LogTwitterName, handle).Msg("Cannot read most recent tweet")
		service.reply(req.chatID, "Unable to follow @"+handle)
		return
	}

	errFollow := service.accountRepo.Follow(entities.FollowedAccount{ChatID: req.chatID, Handle: handle, WatermarkID: mostRecent})
	switch {
	case errors.Is(errFollow, account.ErrAlreadyFollowed):
		service.reply(req.chatID, "Already following @"+handle)
	case errFollow != nil:
		log.Error().Err(errFollow).Int64(constants.LogChatID, req.chatID).Str(constants.LogTwitterName, handle).Msg("Cannot save account")
		service.reply(req.chatID, "Unable to follow @"+handle)
	default:
		log.Info().Int64(constants.LogChatID, req.chatID).Str(constants.LogTwitterName, handle).Int64(constants.LogWatermark, mostRecent).Msg("Account followed")
		service.reply(req.chatID, "Followed @"+handle)
	}
}

func (service *Impl) unfollow(req request) {
	handle, valid := parseHandle(commandArgument(req.text))
	if !valid {
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeIncorrect))
		return
	}

	removed, err := service.accountRepo.Unfollow(req.chatID, handle)
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Str(constants.LogTwitterName, handle).Msg("Cannot remove account")
		return
	}
	if removed {
		service.reply(req.chatID, "Unfollowed @"+handle)
	} else {
		service.reply(req.chatID, "Not following @"+handle)
	}
}

func (service *Impl) list(req request) {
	accounts, err := service.accountRepo.FetchAll(req.chatID)
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot read accounts")
		return
	}

	service.reply(req.chatID, formatAccounts(accounts))
}

func (service *Impl) caption(req request) {
	if req.replyToID == 0 {
		return
	}

	if err := service.captionEditor.ClearCaption(req.chatID, req.replyToID); err != nil {
		log.Debug().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Cannot remove caption")
	}
}

func (service *Impl) link(req request) {
	link := strings.TrimSpace(req.text)
	id, err := texts.ParsePostID(link)
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, req.chatID).Msg("Invalid URL")
		service.reply(req.chatID, getMessageFromMessageType(MessageTypeIncorrect))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if errPublish := service.relay.PublishByID(ctx, req.chatID, id); errPublish != nil {
		log.Error().Err(errPublish).Int64(constants.LogChatID, req.chatID).Str(constants.LogTweetURL, link).Msg("Failed to post tweet")
	}
}

func (service *Impl) unknown(req request) {
	service.reply(req.chatID, getMessageFromMessageType(MessageTypeUnknown))
}

func (service *Impl) reply(chatID int64, text string) {
	if err := service.send(chatID, text); err != nil {
		log.Warn().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot reply")
	}
}

func requestOf(ctx *ext.Context) request {
	req := request{}
	if ctx.EffectiveChat != nil {
		req.chatID = ctx.EffectiveChat.Id
	}
	if ctx.EffectiveUser != nil {
		req.username = ctx.EffectiveUser.Username
	}
	if msg := ctx.EffectiveMessage; msg != nil {
		req.text = msg.Text
		if msg.ReplyToMessage != nil {
			req.replyToID = msg.ReplyToMessage.MessageId
		}
	}
	return req
}

func isLink(msg *gotgbot.Message) bool {
	return msg.Text != "" && !strings.HasPrefix(msg.Text, "/")
}

func isCommand(msg *gotgbot.Message) bool {
	return strings.HasPrefix(msg.Text, "/")
}
