package cache

import (
	"fmt"
	"time"

	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// TTL constants for directory lookups
const (
	MemberListTTL  = 2 * time.Minute
	TokenSetTTL    = 5 * time.Minute
	AdminTokensTTL = 5 * time.Minute
)

// DirectoryCache caches group membership and push-token fan-out sets so
// message creation does not hit the directory tables on every send. All
// methods are nil-safe: without Redis every lookup is a miss.
type DirectoryCache struct {
	redis *RedisCache
}

func NewDirectoryCache(redis *RedisCache) *DirectoryCache {
	return &DirectoryCache{redis: redis}
}

func memberListKey(groupID uint) string {
	return fmt.Sprintf("dir:members:%d", groupID)
}

func memberTokensKey(groupID uint) string {
	return fmt.Sprintf("dir:tokens:group:%d", groupID)
}

const adminTokensKey = "dir:tokens:admins"

// GetMembers retrieves a cached group member list
func (dc *DirectoryCache) GetMembers(groupID uint) ([]models.User, bool) {
	if dc == nil || dc.redis == nil {
		return nil, false
	}
	data, err := dc.redis.Get(memberListKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}

	var members []models.User
	if err := msgpack.Unmarshal(data, &members); err != nil {
		return nil, false
	}
	return members, true
}

// SetMembers caches a group member list
func (dc *DirectoryCache) SetMembers(groupID uint, members []models.User) error {
	if dc == nil || dc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(members)
	if err != nil {
		return err
	}
	return dc.redis.Set(memberListKey(groupID), data, MemberListTTL)
}

// GetMemberTokens retrieves a cached token fan-out set for a group
func (dc *DirectoryCache) GetMemberTokens(groupID uint) ([]string, bool) {
	if dc == nil || dc.redis == nil {
		return nil, false
	}
	data, err := dc.redis.Get(memberTokensKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}

	var tokens []string
	if err := msgpack.Unmarshal(data, &tokens); err != nil {
		return nil, false
	}
	return tokens, true
}

// SetMemberTokens caches a token fan-out set for a group
func (dc *DirectoryCache) SetMemberTokens(groupID uint, tokens []string) error {
	if dc == nil || dc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(tokens)
	if err != nil {
		return err
	}
	return dc.redis.Set(memberTokensKey(groupID), data, TokenSetTTL)
}

// GetAdminTokens retrieves the cached admin token set
func (dc *DirectoryCache) GetAdminTokens() ([]string, bool) {
	if dc == nil || dc.redis == nil {
		return nil, false
	}
	data, err := dc.redis.Get(adminTokensKey)
	if err != nil || data == nil {
		return nil, false
	}

	var tokens []string
	if err := msgpack.Unmarshal(data, &tokens); err != nil {
		return nil, false
	}
	return tokens, true
}

// SetAdminTokens caches the admin token set
func (dc *DirectoryCache) SetAdminTokens(tokens []string) error {
	if dc == nil || dc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(tokens)
	if err != nil {
		return err
	}
	return dc.redis.Set(adminTokensKey, data, AdminTokensTTL)
}

// InvalidateGroup drops the member list and token set for a group. Called
// on every membership mutation.
func (dc *DirectoryCache) InvalidateGroup(groupID uint) error {
	if dc == nil || dc.redis == nil {
		return nil
	}
	if err := dc.redis.Delete(memberListKey(groupID)); err != nil {
		return err
	}
	return dc.redis.Delete(memberTokensKey(groupID))
}

// InvalidateAdminTokens drops the admin token set. Called when a user's
// role, token or active flag changes.
func (dc *DirectoryCache) InvalidateAdminTokens() error {
	if dc == nil || dc.redis == nil {
		return nil
	}
	return dc.redis.Delete(adminTokensKey)
}
