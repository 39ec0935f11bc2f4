// Package docs registra a especificação Swagger servida em /swagger/doc.json.
// O template é mantido à mão e acompanha as anotações @Router dos handlers.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registra um novo usuário",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Username ou email já em uso", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/auth/register-admin": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["auth"],
                "summary": "Registra um administrador",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Autentica um usuário",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/inventory-counts": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory-counts"],
                "summary": "Lista contagens",
                "parameters": [
                    {"type": "integer", "name": "warehouse_id", "in": "query"},
                    {"type": "string", "enum": ["in_progress", "completed", "closed"], "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CountView"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory-counts"],
                "summary": "Cria uma contagem",
                "parameters": [{"in": "body", "name": "count", "required": true, "schema": {"$ref": "#/definitions/domain.CountInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CountView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/inventory-counts/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory-counts"],
                "summary": "Detalhe de uma contagem",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CountView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/inventory-counts/{id}/close": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory-counts"],
                "summary": "Fecha uma contagem",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CountView"}},
                    "400": {"description": "Contagem já fechada", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/inventory-counts/{id}/items": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory-counts"],
                "summary": "Lista os itens de uma contagem",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.InventoryItem"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory-counts"],
                "summary": "Adiciona um item à contagem",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/domain.CountItemInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.InventoryItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/inventory": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory"],
                "summary": "Resumo de estoque de todos os armazéns",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.WarehouseInventory"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory"],
                "summary": "Registra estoque num armazém",
                "parameters": [{"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/domain.InventoryItemInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.InventoryItem"}}}
            }
        },
        "/inventory/{id}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory"],
                "summary": "Sobrescreve a quantidade de um item",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "quantity", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InventoryItem"}}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory"],
                "summary": "Remove um item de estoque",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}
            }
        },
        "/inventory/warehouse/{warehouseID}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory"],
                "summary": "Resumo de estoque de um armazém",
                "parameters": [{"type": "integer", "name": "warehouseID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WarehouseInventory"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/inventory/warehouse/{warehouseID}/product/{productID}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["inventory"],
                "summary": "Quantidade avulsa de um produto num armazém",
                "parameters": [
                    {"type": "integer", "name": "warehouseID", "in": "path", "required": true},
                    {"type": "integer", "name": "productID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProductQuantity"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/warehouses": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["warehouses"],
                "summary": "Lista todos os armazéns",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Warehouse"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["warehouses"],
                "summary": "Cria um novo armazém",
                "parameters": [{"in": "body", "name": "warehouse", "required": true, "schema": {"$ref": "#/definitions/domain.WarehouseInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/warehouses/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["warehouses"],
                "summary": "Obtém um armazém por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["warehouses"],
                "summary": "Atualiza um armazém",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "warehouse", "required": true, "schema": {"$ref": "#/definitions/domain.WarehouseInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["warehouses"],
                "summary": "Deleta um armazém",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Armazém em uso", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["products"],
                "summary": "Lista todos os produtos",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["products"],
                "summary": "Cria um novo produto",
                "parameters": [{"in": "body", "name": "product", "required": true, "schema": {"$ref": "#/definitions/domain.ProductInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["products"],
                "summary": "Obtém um produto por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["products"],
                "summary": "Atualiza um produto",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "product", "required": true, "schema": {"$ref": "#/definitions/domain.ProductInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["products"],
                "summary": "Deleta um produto",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Lista usuários",
                "parameters": [
                    {"type": "integer", "default": 0, "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Cria um usuário",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Usuário autenticado",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}}}
            }
        },
        "/users/me/warehouses": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Armazéns do usuário autenticado",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserWarehouses"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Obtém um usuário",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Atualiza um usuário",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Remove um usuário",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Usuário criador de contagens", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/assign-warehouses": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Substitui os armazéns atribuídos",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "warehouse_ids", "required": true, "schema": {"type": "array", "items": {"type": "integer"}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserWarehouses"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/warehouses": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Armazéns atribuídos a um usuário",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserWarehouses"}}}
            }
        }
    },
    "definitions": {
        "domain.Warehouse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "capacity": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.WarehouseInput": {
            "type": "object",
            "required": ["name", "location"],
            "properties": {
                "name": {"type": "string"},
                "location": {"type": "string"},
                "capacity": {"type": "integer", "minimum": 0}
            }
        },
        "domain.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string", "example": "19.90"},
                "packaging_unit": {"type": "string"},
                "units_per_package": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.ProductInput": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string"},
                "packaging_unit": {"type": "string"},
                "units_per_package": {"type": "integer", "minimum": 0}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user"]},
                "picture_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.UserWarehouses": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "assigned_warehouses": {"type": "array", "items": {"$ref": "#/definitions/domain.Warehouse"}}
            }
        },
        "domain.InventoryDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "product_name": {"type": "string"},
                "product_price": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.ProductQuantity": {
            "type": "object",
            "properties": {
                "warehouse_id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "category": {"type": "string", "example": "INVALID_STATE"},
                "message": {"type": "string"}
            }
        },
        "domain.CountInput": {
            "type": "object",
            "required": ["name", "cut_off_date", "warehouse_id"],
            "properties": {
                "name": {"type": "string"},
                "cut_off_date": {"type": "string", "example": "2025-01-31"},
                "warehouse_id": {"type": "integer"}
            }
        },
        "domain.CountView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "cut_off_date": {"type": "string", "example": "2025-01-31"},
                "warehouse_id": {"type": "integer"},
                "warehouse_name": {"type": "string"},
                "status": {"type": "string", "enum": ["in_progress", "completed", "closed"]},
                "created_by": {"type": "integer"},
                "creator_username": {"type": "string"},
                "created_at": {"type": "string"},
                "closed_at": {"type": "string"},
                "items_count": {"type": "integer"}
            }
        },
        "domain.CountItemInput": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "integer"},
                "packages_count": {"type": "integer", "minimum": 0}
            }
        },
        "domain.InventoryItemInput": {
            "type": "object",
            "required": ["warehouse_id", "product_id"],
            "properties": {
                "count_id": {"type": "integer"},
                "warehouse_id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "packages_count": {"type": "integer", "minimum": 0}
            }
        },
        "domain.InventoryItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "count_id": {"type": "integer"},
                "warehouse_id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "packages_count": {"type": "integer"},
                "quantity": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.WarehouseInventory": {
            "type": "object",
            "properties": {
                "warehouse_id": {"type": "integer"},
                "warehouse_name": {"type": "string"},
                "warehouse_location": {"type": "string"},
                "total_products_count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.InventoryDetail"}}
            }
        },
        "domain.UserRegistration": {
            "type": "object",
            "required": ["first_name", "last_name", "email", "phone", "username"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user"]},
                "picture_url": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo contém as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "StockCount API",
	Description:      "Contagens de inventário, estoque por armazém e política de acesso por armazém.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
