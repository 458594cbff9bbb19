// Package docs holds the OpenAPI description served at /swagger. It is
// kept in the layout produced by swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/chats/{chat_id}/pigs/{owner_id}/feed": {
            "post": {
                "description": "Grows the owner's chat pig once per game day, creating it on the first feed.\nSupports Idempotency-Key for safe retries.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pigs"],
                "summary": "Feed a chat pig",
                "operationId": "feedPig",
                "parameters": [
                    {"type": "integer", "description": "Telegram chat id", "name": "chat_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Telegram user id", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Feed payload", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handlers.FeedPigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.FeedResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Already fed today", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/chats/{chat_id}/pigs/{owner_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Pigs"],
                "summary": "Get a chat pig",
                "operationId": "getChatPig",
                "parameters": [
                    {"type": "integer", "description": "Telegram chat id", "name": "chat_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Telegram user id", "name": "owner_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.ChatPigView"}},
                    "404": {"description": "No pig in this chat", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/chats/{chat_id}/pigs/{owner_id}/name": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pigs"],
                "summary": "Rename a chat pig",
                "operationId": "renameChatPig",
                "parameters": [
                    {"type": "integer", "description": "Telegram chat id", "name": "chat_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Telegram user id", "name": "owner_id", "in": "path", "required": true},
                    {"description": "New name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RenamePigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Pig"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/chats/{chat_id}/top": {
            "get": {
                "description": "Chat pigs ordered by mass. Supports If-None-Match.",
                "produces": ["application/json"],
                "tags": ["Leaderboards"],
                "summary": "Chat leaderboard",
                "operationId": "chatTop",
                "parameters": [
                    {"type": "integer", "description": "Telegram chat id", "name": "chat_id", "in": "path", "required": true},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 50, "minimum": 1, "type": "integer", "default": 10, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TopResponse"}},
                    "304": {"description": "Not modified"}
                }
            }
        },
        "/pigs/{owner_id}": {
            "get": {
                "description": "Creates the hand pig on first use and refreshes its mass once per game day.",
                "produces": ["application/json"],
                "tags": ["Pigs"],
                "summary": "Get the daily hand pig",
                "operationId": "getHandPig",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "description": "Owner first name, names a new pig", "name": "first_name", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.HandPigView"}}
                }
            }
        },
        "/pigs/{owner_id}/name": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pigs"],
                "summary": "Rename the hand pig",
                "operationId": "renameHandPig",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "owner_id", "in": "path", "required": true},
                    {"description": "New name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RenamePigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Pig"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/pigs/{owner_id}/overclock": {
            "get": {
                "description": "Cosmetic CPU, RAM and GPU values derived from the pig size of the day.",
                "produces": ["application/json"],
                "tags": ["Pigs"],
                "summary": "Overclock report",
                "operationId": "getOverclock",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "owner_id", "in": "path", "required": true},
                    {"type": "string", "description": "Game day, YYYY-MM-DD (default today)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/game.Overclock"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/top/hand": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Leaderboards"],
                "summary": "Global hand pig leaderboard",
                "operationId": "handTop",
                "parameters": [
                    {"type": "string", "default": "global", "description": "global, win, p_global or p_win", "name": "variant", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 50, "minimum": 1, "type": "integer", "default": 10, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TopResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/duels": {
            "post": {
                "description": "Refreshes both hand pigs, rolls and persists the outcome.\nOne duel per inline message at a time; repeats get 409.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Duels"],
                "summary": "Resolve a duel",
                "operationId": "startDuel",
                "parameters": [
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Challenge", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.StartDuelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.DuelResult"}},
                    "400": {"description": "Bad request or self duel", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "A participant has no pig", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Duel already running", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/achievements": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Achievements"],
                "summary": "Achievement catalog",
                "operationId": "listAchievements",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.AchievementDTO"}}}
                }
            }
        },
        "/achievements/check": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Achievements"],
                "summary": "Evaluate achievements for a pig",
                "operationId": "checkAchievements",
                "parameters": [
                    {"description": "Pig", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CheckAchievementsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CheckAchievementsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "put": {
                "description": "The support tier adds a flat bonus to the daily hand pig.",
                "consumes": ["application/json"],
                "tags": ["Users"],
                "summary": "Create or update a user",
                "operationId": "upsertUser",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "id", "in": "path", "required": true},
                    {"description": "Profile", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpsertUserRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/inline/chosen": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Inline"],
                "summary": "Record a chosen inline result",
                "operationId": "chosenInline",
                "parameters": [
                    {"description": "Chosen result", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ChosenInlineRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ChosenInlineResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Pig": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "kind": {"type": "string", "enum": ["chat", "hand"]},
                "chat_id": {"type": "integer"},
                "name": {"type": "string"},
                "mass": {"type": "integer"},
                "last_update_date": {"type": "string"},
                "win_count": {"type": "integer"},
                "loss_count": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "game.Overclock": {
            "type": "object",
            "properties": {
                "size": {"type": "integer"},
                "cpu_clock": {"type": "number"},
                "cpu_emoji": {"type": "string"},
                "ram_clock": {"type": "integer"},
                "ram_emoji": {"type": "string"},
                "gpu_hashrate": {"type": "number"},
                "gpu_emoji": {"type": "string"}
            }
        },
        "handlers.AchievementDTO": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 203},
                "name": {"type": "string", "example": "hundred_club"}
            }
        },
        "handlers.CheckAchievementsRequest": {
            "type": "object",
            "required": ["pig_id"],
            "properties": {
                "pig_id": {"type": "integer", "example": 7}
            }
        },
        "handlers.CheckAchievementsResponse": {
            "type": "object",
            "properties": {
                "pig_id": {"type": "integer"},
                "unlocked": {"type": "array", "items": {"$ref": "#/definitions/handlers.AchievementDTO"}}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "code": {"type": "string", "example": "already_fed"},
                "message": {"type": "string"}
            }
        },
        "handlers.FeedPigRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string", "example": "Vasya"}
            }
        },
        "handlers.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "has_next": {"type": "boolean"}
            }
        },
        "handlers.RenamePigRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Hryundel the Great"}
            }
        },
        "handlers.ChosenInlineRequest": {
            "type": "object",
            "required": ["result_id", "user_id"],
            "properties": {
                "result_id": {"type": "string", "example": "flag_change_info|3"},
                "user_id": {"type": "integer", "example": 100}
            }
        },
        "handlers.ChosenInlineResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "flag_change_info"},
                "index": {"type": "integer", "example": 3}
            }
        },
        "handlers.StartDuelRequest": {
            "type": "object",
            "required": ["inline_message_id", "opponent_id"],
            "properties": {
                "inline_message_id": {"type": "string", "example": "AgAAAL0xAAAp"},
                "challenger_id": {"type": "integer", "example": 100},
                "callback_data": {"type": "string", "example": "start_duel:100:"},
                "opponent_id": {"type": "integer", "example": 200}
            }
        },
        "handlers.TopEntry": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "emoji": {"type": "string"},
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "name": {"type": "string"},
                "mass": {"type": "integer"},
                "win_count": {"type": "integer"},
                "loss_count": {"type": "integer"}
            }
        },
        "handlers.TopResponse": {
            "type": "object",
            "properties": {
                "board": {"type": "string", "example": "chat"},
                "pigs": {"type": "array", "items": {"$ref": "#/definitions/handlers.TopEntry"}},
                "pagination": {"$ref": "#/definitions/handlers.Pagination"}
            }
        },
        "handlers.UpsertUserRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string", "example": "Vasya"},
                "subscribed": {"type": "boolean"},
                "supported": {"type": "boolean"}
            }
        },
        "services.ChatPigView": {
            "type": "object",
            "properties": {
                "pig": {"$ref": "#/definitions/domain.Pig"},
                "emoji": {"type": "string"},
                "new_achievements": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "services.DuelResult": {
            "type": "object",
            "properties": {
                "inline_message_id": {"type": "string"},
                "outcome": {"type": "string", "enum": ["draw", "win", "critical", "knockout"]},
                "damage": {"type": "integer"},
                "winner": {"$ref": "#/definitions/domain.Pig"},
                "loser": {"$ref": "#/definitions/domain.Pig"},
                "rolls": {"$ref": "#/definitions/services.DuelRolls"}
            }
        },
        "services.DuelRolls": {
            "type": "object",
            "properties": {
                "opponent_chance": {"type": "integer"},
                "challenger_chance": {"type": "integer"},
                "opponent_roll": {"type": "integer"},
                "challenger_roll": {"type": "integer"}
            }
        },
        "services.FeedResult": {
            "type": "object",
            "properties": {
                "pig": {"$ref": "#/definitions/domain.Pig"},
                "delta": {"type": "integer"},
                "status": {"type": "string"},
                "created": {"type": "boolean"},
                "new_achievements": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "services.HandPigView": {
            "type": "object",
            "properties": {
                "pig": {"$ref": "#/definitions/domain.Pig"},
                "emoji": {"type": "string"},
                "created": {"type": "boolean"},
                "winrate": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "pigbot game API",
	Description:      "Pig growing, duels, achievements and leaderboards for the pigbot Telegram frontend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
