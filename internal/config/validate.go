package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}

	if err := c.Kafka.validate(); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (f *FeedConfig) validate() error {
	if f.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be > 0 (got %d)", f.MaxLimit)
	}
	if f.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be > 0 (got %d)", f.DefaultLimit)
	}
	if f.DefaultLimit > f.MaxLimit {
		return fmt.Errorf("default_limit %d exceeds max_limit %d", f.DefaultLimit, f.MaxLimit)
	}
	return nil
}

func (k *KafkaConfig) validate() error {
	if !k.Enabled {
		return nil
	}
	if len(k.Brokers) == 0 {
		return fmt.Errorf("brokers are required when enabled")
	}
	if k.Topic == "" {
		return fmt.Errorf("topic is required when enabled")
	}
	if k.GroupID == "" {
		return fmt.Errorf("group_id is required when enabled")
	}
	return nil
}
