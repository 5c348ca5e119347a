// Package main provides a test server for exercising the frontend flow
// offline. It runs with in-memory SQLite, a canned LLM generator, and an
// in-memory Google Calendar stand-in, so the chat → generate → register →
// calendar loop works without any API keys.
//
// Usage:
//
//	go run cmd/testserver/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jalnangage/marketing-agent/internal/config"
	"github.com/jalnangage/marketing-agent/internal/database"
	"github.com/jalnangage/marketing-agent/internal/gcal"
	"github.com/jalnangage/marketing-agent/internal/llm"
	"github.com/jalnangage/marketing-agent/internal/notify"
	"github.com/jalnangage/marketing-agent/internal/server"
)

const cannedStrategyText = `전략 1: 인스타그램 릴스 챌린지 마케팅
개요: 매장의 시그니처 메뉴를 활용한 숏폼 챌린지로 자연스러운 바이럴을 만듭니다.
사전단계:
1. 챌린지 컨셉 기획 - 2일 - 직접 실행
2. 촬영 장비 및 장소 준비 - 1일 - 직접 실행
기획단계:
1. 릴스 영상 촬영 및 편집 - 3일 - 전문가 의뢰
실행단계:
1. 챌린지 업로드 및 해시태그 운영 - 7일 - 직접 실행
효과: 신규 고객 유입과 브랜드 인지도 상승이 기대됩니다.

전략 2: 단골 고객 쿠폰 이벤트
개요: 재방문 고객에게 단계별 할인 쿠폰을 제공해 충성도를 높입니다.
사전단계:
1. 쿠폰 정책 설계 - 1일 - 직접 실행
실행단계:
1. 쿠폰 배포 및 안내 - 5일 - 직접 실행
효과: 재방문율 상승과 객단가 증가가 기대됩니다.`

// cannedGenerator satisfies llm.Generator without calling OpenAI.
type cannedGenerator struct{}

func (cannedGenerator) Chat(ctx context.Context, message string, history []llm.Message) (string, error) {
	return fmt.Sprintf("좋은 질문이에요! %q에 대해서는 우선 타깃 고객을 정리해보는 것을 추천드립니다.", message), nil
}

func (cannedGenerator) GenerateStrategyText(ctx context.Context, history []llm.Message) (string, error) {
	return cannedStrategyText, nil
}

// memCalendar is an in-memory Google Calendar stand-in.
type memCalendar struct {
	mu     sync.Mutex
	authed bool
	nextID int
	events map[string]gcal.EventDetails
}

func newMemCalendar() *memCalendar {
	return &memCalendar{authed: true, events: make(map[string]gcal.EventDetails)}
}

func (m *memCalendar) IsAuthenticated() bool { return m.authed }

func (m *memCalendar) GetAuthURL() string {
	return "https://accounts.google.com/o/oauth2/auth?test=1"
}

func (m *memCalendar) ExchangeCode(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authed = true
	return nil
}

func (m *memCalendar) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authed = false
	return nil
}

func (m *memCalendar) ListCalendars() ([]gcal.CalendarInfo, error) {
	return []gcal.CalendarInfo{{ID: "primary", Summary: "테스트 캘린더", Primary: true}}, nil
}

func (m *memCalendar) CreateEvent(calendarID string, input gcal.EventInput) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := fmt.Sprintf("testevent%d", m.nextID)
	end := input.EndTime
	m.events[id] = gcal.EventDetails{
		ID:          id,
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		StartTime:   input.StartTime,
		EndTime:     &end,
		AllDay:      input.AllDay,
		CalendarID:  calendarID,
	}
	fmt.Printf("Test calendar: created event %s (%s)\n", id, input.Summary)
	return id, "https://calendar.google.com/test/" + id, nil
}

func (m *memCalendar) UpdateEvent(calendarID, eventID string, patch gcal.EventPatch) (*gcal.EventDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[eventID]
	if !ok {
		return nil, gcal.ErrEventNotFound
	}
	if patch.Summary != nil {
		ev.Summary = *patch.Summary
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.StartTime != nil {
		ev.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		ev.EndTime = patch.EndTime
	}
	m.events[eventID] = ev
	return &ev, nil
}

func (m *memCalendar) DeleteEvent(calendarID, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[eventID]; !ok {
		return gcal.ErrEventNotFound
	}
	delete(m.events, eventID)
	return nil
}

func (m *memCalendar) ListMonthEvents(calendarID string, year int, month time.Month, loc *time.Location) ([]gcal.EventDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []gcal.EventDetails
	for _, ev := range m.events {
		if ev.StartTime.In(loc).Year() == year && ev.StartTime.In(loc).Month() == month {
			out = append(out, ev)
		}
	}
	return out, nil
}

func main() {
	fmt.Println("Starting marketing agent test server...")
	fmt.Println("In-memory SQLite, canned LLM, in-memory calendar. No API keys needed.")

	cfg := config.LoadFromEnv()

	db, err := database.New(":memory:")
	if err != nil {
		fmt.Printf("Failed to create database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("In-memory database initialized")

	cal := newMemCalendar()
	notifyService := notify.NewService(nil, "")

	worker := gcal.NewWorker(cal, db, gcal.WorkerConfig{
		CalendarID:       cfg.CalendarID,
		SubmitDelayMilli: 50,
	})
	worker.OnBatchDone(func(result gcal.BatchResult) {
		fmt.Printf("Test batch done: %d created, %d failed\n", result.Created, result.Failed)
	})
	if err := worker.Start(); err != nil {
		fmt.Printf("Warning: submit worker failed to start: %v\n", err)
	}

	srv := server.New(server.ServerConfig{
		DB:            db,
		GCalClient:    cal,
		Worker:        worker,
		Generator:     cannedGenerator{},
		NotifyService: notifyService,
		Port:          cfg.HTTPPort,
		BaseURL:       cfg.BaseURL,
		CalendarID:    cfg.CalendarID,
		Timezone:      cfg.Timezone,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down test server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	worker.Stop()
	srv.Shutdown(ctx)
}
