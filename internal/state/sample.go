// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state contains the application state model and the reducer.
package state

// SampleState builds a first-run snapshot with example folders, agents,
// and a starter chat, so the sidebar is not empty on first launch. It
// is applied only when the config enables seeding and no persisted
// snapshot exists.
func SampleState(r *Reducer) AppState {
	s := NewAppState()

	s = r.Reduce(s, CreateAgent{
		Name:         "General Assistant",
		SystemPrompt: "You are a helpful AI assistant that provides clear and concise information.",
		Model:        ModelQuick,
		Temperature:  0.7,
	})
	s = r.Reduce(s, CreateAgent{
		Name:         "Market Analyst",
		SystemPrompt: "You are a financial market expert specialized in analyzing market trends, stocks, and investment opportunities.",
		Model:        ModelDeep,
		Temperature:  0.5,
	})
	s = r.Reduce(s, CreateAgent{
		Name:         "Code Helper",
		SystemPrompt: "You are a programming assistant that helps with code examples, debugging, and explaining technical concepts.",
		Model:        ModelDeep,
		Temperature:  0.3,
	})

	s = r.Reduce(s, CreateFolder{Name: "Market Analysis"})
	s = r.Reduce(s, CreateFolder{Name: "Trading Strategies"})
	s = r.Reduce(s, CreateFolder{Name: "Investment Research"})

	s = r.Reduce(s, CreateChat{
		Title:    DefaultChatTitle,
		FolderID: s.Folders[0].ID,
		AgentID:  s.Agents[1].ID,
	})
	s = r.Reduce(s, AddMessage{
		ChatID: s.ActiveChat,
		Message: NewMessage{
			Role:    RoleUser,
			Content: "Can you analyze the current tech stock market trends?",
		},
	})
	s = r.Reduce(s, AddMessage{
		ChatID: s.ActiveChat,
		Message: NewMessage{
			Role:    RoleAssistant,
			Content: "Based on recent data, tech stocks are showing mixed performance. Cloud infrastructure and AI-focused firms are outperforming the broader market, while semiconductors face supply chain pressure.\n\nWould you like a deeper look at any segment?",
		},
	})

	// Leave nothing selected so the welcome screen shows first.
	s = r.Reduce(s, SetActiveChat{})
	s = r.Reduce(s, SetActiveFolder{})
	return s
}
