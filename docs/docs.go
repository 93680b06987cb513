// Package docs registers the OpenAPI document served under /swagger.
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
    "paths": {
        "/healthcheck": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check endpoint",
                "responses": {"200": {"description": "Server is up and running"}}
            }
        },
        "/v1/stake": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Stake tokens",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.StakeRequestPayload"}}],
                "responses": {
                    "200": {"description": "Committed operation", "schema": {"$ref": "#/definitions/services.OperationPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "403": {"description": "Error: Ledger is paused", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/unbond": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Request unbonding",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UnbondRequestPayload"}}],
                "responses": {
                    "200": {"description": "Committed operation", "schema": {"$ref": "#/definitions/services.OperationPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "404": {"description": "Error: No stake found for sender", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/withdraw": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Withdraw unbonded stake",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SenderRequestPayload"}}],
                "responses": {
                    "200": {"description": "Committed operation", "schema": {"$ref": "#/definitions/services.OperationPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "404": {"description": "Error: No unbonding found for sender", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/claim": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Claim rewards",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SenderRequestPayload"}}],
                "responses": {
                    "200": {"description": "Committed operation", "schema": {"$ref": "#/definitions/services.OperationPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "404": {"description": "Error: No stake found for sender", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/config": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get ledger config",
                "responses": {"200": {"description": "Ledger config", "schema": {"$ref": "#/definitions/ledger.Config"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Update ledger config",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateConfigRequestPayload"}}],
                "responses": {
                    "200": {"description": "Committed operation", "schema": {"$ref": "#/definitions/services.OperationPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "403": {"description": "Error: Unauthorized", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/staker/stake": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get staker stake",
                "parameters": [{"type": "string", "name": "address", "in": "query", "required": true}],
                "responses": {"200": {"description": "Stake of the address", "schema": {"$ref": "#/definitions/services.StakePublic"}}}
            }
        },
        "/v1/staker/rewards": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get staker rewards",
                "parameters": [{"type": "string", "name": "address", "in": "query", "required": true}],
                "responses": {"200": {"description": "Claimable rewards", "schema": {"$ref": "#/definitions/services.RewardsPublic"}}}
            }
        },
        "/v1/staker/unbond": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get staker unbonding slot",
                "parameters": [{"type": "string", "name": "address", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "Unbonding slot", "schema": {"$ref": "#/definitions/services.UnbondPublic"}},
                    "404": {"description": "Error: Not Found", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/stakers": {
            "get": {
                "produces": ["application/json"],
                "summary": "List stakers",
                "parameters": [{"type": "string", "name": "pagination_key", "in": "query"}],
                "responses": {"200": {"description": "List of stakers and pagination token", "schema": {"type": "array", "items": {"$ref": "#/definitions/ledger.Staker"}}}}
            }
        },
        "/v1/state": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get ledger state",
                "responses": {"200": {"description": "Ledger state", "schema": {"$ref": "#/definitions/ledger.GlobalState"}}}
            }
        }
    },
    "definitions": {
        "ledger.Coin": {
            "type": "object",
            "properties": {"denom": {"type": "string"}, "amount": {"type": "string"}}
        },
        "ledger.BankSend": {
            "type": "object",
            "properties": {"to_address": {"type": "string"}, "amount": {"type": "array", "items": {"$ref": "#/definitions/ledger.Coin"}}}
        },
        "ledger.Config": {
            "type": "object",
            "properties": {
                "owner": {"type": "string"},
                "chief_pausing_officer": {"type": "string"},
                "denom": {"type": "string"},
                "reward_rate": {"type": "string"},
                "paused": {"type": "boolean"},
                "unbonding_period": {"type": "string"}
            }
        },
        "ledger.GlobalState": {
            "type": "object",
            "properties": {
                "reward_per_token_stored": {"type": "string"},
                "last_update_time": {"type": "string"},
                "staked_balance": {"type": "string"},
                "unbonding_balance": {"type": "string"}
            }
        },
        "ledger.Staker": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "amount": {"type": "string"}, "rewards": {"type": "string"}}
        },
        "handlers.SenderRequestPayload": {
            "type": "object",
            "properties": {"sender": {"type": "string"}}
        },
        "handlers.StakeRequestPayload": {
            "type": "object",
            "properties": {"sender": {"type": "string"}, "funds": {"type": "array", "items": {"$ref": "#/definitions/ledger.Coin"}}}
        },
        "handlers.UnbondRequestPayload": {
            "type": "object",
            "properties": {"sender": {"type": "string"}, "amount": {"type": "string"}}
        },
        "handlers.UpdateConfigRequestPayload": {
            "type": "object",
            "properties": {"sender": {"type": "string"}, "config": {"$ref": "#/definitions/ledger.Config"}}
        },
        "services.OperationPublic": {
            "type": "object",
            "properties": {"action": {"type": "string"}, "transfers": {"type": "array", "items": {"$ref": "#/definitions/ledger.BankSend"}}}
        },
        "services.StakePublic": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "amount": {"type": "string"}}
        },
        "services.RewardsPublic": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "rewards": {"type": "string"}}
        },
        "services.UnbondPublic": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "unbound_amount": {"type": "string"},
                "expiration_timestamp": {"type": "string"},
                "is_valid": {"type": "boolean"},
                "expired": {"type": "boolean"}
            }
        },
        "types.Error": {
            "type": "object",
            "properties": {"errorCode": {"type": "string"}, "message": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Staking Ledger Service API",
	Description:      "Stake tokens, accrue rewards, unbond and withdraw through a single ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
