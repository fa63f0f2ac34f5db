package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// ChatPoller is a background worker that polls the loan service for new
// chat messages and pushes them to websocket clients. It implements
// ChatFeed, so messages sent through the portal are not pushed twice.
type ChatPoller struct {
	chat      domain.ChatGateway
	publisher websocket.EventPublisher
	session   domain.Session
	logger    zerolog.Logger
	interval  time.Duration
	seen      map[int64]struct{}
	primed    bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
	mu        sync.Mutex
	started   bool
	running   bool
}

// ChatPollerConfig holds configuration for the chat poller
type ChatPollerConfig struct {
	Interval     time.Duration // How often to poll
	ServiceToken string        // Admin credential used to read every conversation
}

// DefaultChatPollerConfig returns sensible defaults
func DefaultChatPollerConfig() ChatPollerConfig {
	return ChatPollerConfig{
		Interval: 3 * time.Second,
	}
}

var _ ChatFeed = (*ChatPoller)(nil)

// NewChatPoller creates a new chat poller
func NewChatPoller(
	chat domain.ChatGateway,
	publisher websocket.EventPublisher,
	logger zerolog.Logger,
	config ChatPollerConfig,
) *ChatPoller {
	if config.Interval <= 0 {
		config.Interval = DefaultChatPollerConfig().Interval
	}

	return &ChatPoller{
		chat:      chat,
		publisher: publisher,
		session:   domain.Session{Token: config.ServiceToken, Subject: "chat-poller", Role: domain.RoleAdmin},
		logger:    logger.With().Str("component", "chat_poller").Logger(),
		interval:  config.Interval,
		seen:      make(map[int64]struct{}),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins polling in the background. A poller runs at most once.
func (p *ChatPoller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.running = true
	p.mu.Unlock()

	p.logger.Info().Dur("interval", p.interval).Msg("Starting chat poller")

	go p.run(ctx)
}

// Stop stops the poller and waits for the loop to exit. Safe to call
// concurrently and more than once.
func (p *ChatPoller) Stop() {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return
	}

	p.stopOnce.Do(func() {
		p.logger.Info().Msg("Stopping chat poller")
		close(p.stopCh)
	})
	<-p.doneCh
	p.logger.Info().Msg("Chat poller stopped")
}

func (p *ChatPoller) run(ctx context.Context) {
	defer close(p.doneCh)

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.setStopped()
			return
		case <-p.stopCh:
			p.setStopped()
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *ChatPoller) setStopped() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

func (p *ChatPoller) poll(ctx context.Context) {
	pushed, err := p.Poll(ctx)
	if err != nil {
		metrics.ChatPollErrorsTotal.Inc()
		p.logger.Warn().Err(err).Msg("Chat poll failed")
		return
	}
	if pushed > 0 {
		p.logger.Debug().Int("pushed", pushed).Msg("Pushed new chat messages")
	}
}

// Poll fetches every conversation once and pushes the messages not seen
// before. The first successful poll only records what already exists.
func (p *ChatPoller) Poll(ctx context.Context) (int, error) {
	messages, err := p.chat.GetAllChats(ctx, p.session)
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	if !p.primed {
		for _, msg := range messages {
			p.seen[msg.ID] = struct{}{}
		}
		p.primed = true
		p.mu.Unlock()
		return 0, nil
	}
	p.mu.Unlock()

	pushed := 0
	for _, msg := range messages {
		if p.Deliver(msg) {
			pushed++
		}
	}
	return pushed, nil
}

// Deliver implements ChatFeed. Messages without an id are always pushed.
func (p *ChatPoller) Deliver(msg domain.ChatMessage) bool {
	if msg.ID != 0 {
		p.mu.Lock()
		if _, ok := p.seen[msg.ID]; ok {
			p.mu.Unlock()
			return false
		}
		p.seen[msg.ID] = struct{}{}
		p.mu.Unlock()
	}
	publishChat(p.publisher, msg)
	return true
}

// IsRunning returns whether the poller is currently running
func (p *ChatPoller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
