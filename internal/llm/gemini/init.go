package gemini

import "solverpro/internal/llm"

const ProviderName = "gemini"

func init() {
	llm.RegisterProvider(ProviderName, func() (llm.Provider, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		client, err := NewClient(config)
		if err != nil {
			// keep the interface nil instead of wrapping a nil *Client
			return nil, err
		}
		return client, nil
	})
}
