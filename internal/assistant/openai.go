package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MorgandeCesso/regulus-back/config"
	appErrors "github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const titleFallback = "New chat"

const (
	defaultRunTimeout   = 120 * time.Second
	defaultPollInterval = 2 * time.Second
)

// Client implements Bridge over the OpenAI Assistants API. It is constructed
// once in main and injected into the chat usecase.
type Client struct {
	api          *openai.Client
	assistantID  string
	titleNamerID string
	runTimeout   time.Duration
	pollInterval time.Duration
	logger       *logger.Logger
}

func NewClient(cfg config.OpenAI, logger *logger.Logger) (*Client, error) {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, errors.Wrap(err, "assistant.NewClient.ParseProxy: ")
		}
		apiCfg.HTTPClient = &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		}
	}

	runTimeout := defaultRunTimeout
	if cfg.RunTimeout > 0 {
		runTimeout = time.Duration(cfg.RunTimeout) * time.Second
	}
	pollInterval := defaultPollInterval
	if cfg.PollInterval > 0 {
		pollInterval = time.Duration(cfg.PollInterval) * time.Millisecond
	}

	return &Client{
		api:          openai.NewClientWithConfig(apiCfg),
		assistantID:  cfg.AssistantID,
		titleNamerID: cfg.TitleNamerID,
		runTimeout:   runTimeout,
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

func (c *Client) StartConversation(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", errors.Wrap(err, "assistant.StartConversation: ")
	}
	c.logger.Info("thread created", "thread_id", thread.ID)
	return thread.ID, nil
}

func (c *Client) SendMessage(ctx context.Context, threadID, content, userName string) (string, error) {
	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})
	if err != nil {
		return "", errors.Wrap(err, "assistant.SendMessage.CreateMessage: ")
	}

	instructions := fmt.Sprintf("Address the user as %s", userName)
	if err := c.createAndPollRun(ctx, threadID, c.assistantID, instructions); err != nil {
		return "", err
	}

	return c.latestReply(ctx, threadID)
}

func (c *Client) EndConversation(ctx context.Context, threadID string) error {
	if _, err := c.api.DeleteThread(ctx, threadID); err != nil {
		return errors.Wrap(err, "assistant.EndConversation: ")
	}
	c.logger.Info("thread deleted", "thread_id", threadID)
	return nil
}

func (c *Client) CreateVectorStore(ctx context.Context, name string) (string, error) {
	store, err := c.api.CreateVectorStore(ctx, openai.VectorStoreRequest{Name: name})
	if err != nil {
		return "", errors.Wrap(err, "assistant.CreateVectorStore: ")
	}
	c.logger.Info("vector store created", "vector_store_id", store.ID)
	return store.ID, nil
}

func (c *Client) AttachFile(ctx context.Context, vectorStoreID, filename string, content []byte) (string, error) {
	file, err := c.api.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    filename,
		Bytes:   content,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		return "", errors.Wrap(err, "assistant.AttachFile.Upload: ")
	}

	_, err = c.api.CreateVectorStoreFile(ctx, vectorStoreID, openai.VectorStoreFileRequest{
		FileID: file.ID,
	})
	if err != nil {
		return "", errors.Wrap(err, "assistant.AttachFile.Link: ")
	}

	// indexing is asynchronous on the provider side
	deadline := time.Now().Add(c.runTimeout)
	for {
		vsFile, err := c.api.RetrieveVectorStoreFile(ctx, vectorStoreID, file.ID)
		if err != nil {
			return "", errors.Wrap(err, "assistant.AttachFile.Retrieve: ")
		}
		switch vsFile.Status {
		case "completed":
			c.logger.Info("file indexed", "file_id", file.ID, "vector_store_id", vectorStoreID)
			return file.ID, nil
		case "in_progress":
		default:
			return "", fmt.Errorf("assistant.AttachFile: indexing of %s ended with status %s", file.ID, vsFile.Status)
		}

		if time.Now().After(deadline) {
			return "", appErrors.ErrRunTimedOut(fmt.Errorf("file %s still indexing after %s", file.ID, c.runTimeout))
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) DetachFile(ctx context.Context, vectorStoreID, fileID string) error {
	if err := c.api.DeleteVectorStoreFile(ctx, vectorStoreID, fileID); err != nil {
		return errors.Wrap(err, "assistant.DetachFile.Unlink: ")
	}
	if err := c.api.DeleteFile(ctx, fileID); err != nil {
		return errors.Wrap(err, "assistant.DetachFile.Delete: ")
	}
	return nil
}

func (c *Client) GenerateTitle(ctx context.Context, userMessage, assistantReply string) string {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		c.logger.Error("title generation: failed to create thread", "err", err)
		return titleFallback
	}
	defer func() {
		if _, err := c.api.DeleteThread(ctx, thread.ID); err != nil {
			c.logger.Warn("title generation: failed to delete thread", "thread_id", thread.ID, "err", err)
		}
	}()

	prompt := fmt.Sprintf(
		"Based on this dialogue, come up with a short chat title (5 words at most):\n\nUser: %s\nAssistant: %s\n\nReply with the title only, no quotes and no extra text.",
		userMessage, assistantReply,
	)
	_, err = c.api.CreateMessage(ctx, thread.ID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
	if err != nil {
		c.logger.Error("title generation: failed to post prompt", "err", err)
		return titleFallback
	}

	instructions := "Generate only the chat title, without quotes or explanations. Five words maximum."
	if err := c.createAndPollRun(ctx, thread.ID, c.titleNamerID, instructions); err != nil {
		c.logger.Error("title generation: run failed", "err", err)
		return titleFallback
	}

	title, err := c.latestReply(ctx, thread.ID)
	if err != nil {
		c.logger.Error("title generation: failed to read reply", "err", err)
		return titleFallback
	}
	title = strings.Trim(strings.TrimSpace(title), `"`)
	if title == "" {
		return titleFallback
	}
	return title
}

// createAndPollRun starts a run and polls it until a terminal status, the
// configured timeout, or context cancellation.
func (c *Client) createAndPollRun(ctx context.Context, threadID, assistantID, instructions string) error {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID:            assistantID,
		AdditionalInstructions: instructions,
	})
	if err != nil {
		return errors.Wrap(err, "assistant.createAndPollRun.Create: ")
	}
	c.logger.Info("run created", "run_id", run.ID, "thread_id", threadID)

	deadline := time.Now().Add(c.runTimeout)
	for {
		switch run.Status {
		case openai.RunStatusCompleted:
			return nil
		case openai.RunStatusQueued, openai.RunStatusInProgress:
			// keep polling
		default:
			return fmt.Errorf("assistant.createAndPollRun: run %s ended with status %s", run.ID, run.Status)
		}

		if time.Now().After(deadline) {
			return appErrors.ErrRunTimedOut(fmt.Errorf("run %s still %s after %s", run.ID, run.Status, c.runTimeout))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}

		run, err = c.api.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return errors.Wrap(err, "assistant.createAndPollRun.Retrieve: ")
		}
	}
}

// latestReply fetches the newest thread message and renders its text.
func (c *Client) latestReply(ctx context.Context, threadID string) (string, error) {
	limit := 1
	order := "desc"
	list, err := c.api.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return "", errors.Wrap(err, "assistant.latestReply.List: ")
	}
	if len(list.Messages) == 0 {
		return "", errors.New("assistant.latestReply: thread has no messages")
	}

	msg := list.Messages[0]
	if len(msg.Content) == 0 || msg.Content[0].Text == nil {
		return "Sorry, I cannot handle this content type", nil
	}

	text := msg.Content[0].Text
	if text.Value == "" {
		return "Sorry, the reply text could not be retrieved", nil
	}

	reply := rewriteCitations(text.Value, text.Annotations, func(fileID string) (string, error) {
		file, err := c.api.GetFile(ctx, fileID)
		if err != nil {
			c.logger.Error("failed to retrieve cited file", "file_id", fileID, "err", err)
			return "", err
		}
		return file.FileName, nil
	})
	return reply, nil
}
