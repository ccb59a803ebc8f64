package llm

import (
	"github.com/cloudwego/eino/components/model"
)

// Factory builds a tool-calling chat model bound to a model identifier.
// It hides concrete providers to preserve dependency direction.
type Factory interface {
	ForModel(modelID string) model.ToolCallingChatModel
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(modelID string) model.ToolCallingChatModel

func (f FactoryFunc) ForModel(modelID string) model.ToolCallingChatModel { return f(modelID) }
